package selector

import (
	"fmt"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/alphara/AIND-Recognizer/model/hmm"
)

// hmmTrainer fits diagonal-covariance Gaussian HMMs.
type hmmTrainer struct {
	seed    int64
	maxIter int
}

// NewHMMTrainer returns the default Trainer backed by the hmm package,
// seeded from config for reproducible fits.
func NewHMMTrainer(config asl.Config) Trainer {

	maxIter := config.EMIterations
	if maxIter < 1 {
		maxIter = hmm.DefaultMaxIter
	}
	return hmmTrainer{
		seed:    config.RandomState,
		maxIter: maxIter,
	}
}

func (t hmmTrainer) Fit(obs corpus.Observations, nstates int) (Model, error) {

	m, e := hmm.Fit(obs, nstates,
		hmm.Name(fmt.Sprintf("hmm-%d", nstates)),
		hmm.Seed(t.seed),
		hmm.MaxIter(t.maxIter))
	if e != nil {
		return nil, e
	}
	return m, nil
}
