package selector

import (
	"math"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/golang/glog"
)

// BIC selects the state count with the lowest Bayesian Information
// Criterion: BIC = -2*logL + p*ln(N), where p is the free parameter
// count and N the total number of observed frames.
type BIC struct {
	base
}

// NewBIC creates a BIC selector.
func NewBIC(c *corpus.Corpus, t Trainer, config asl.Config) *BIC {
	return &BIC{base: newBase(c, t, config)}
}

// NumFreeParams returns the free parameter count of a diagonal-covariance
// Gaussian HMM with n states and feature dimensionality d:
//
//	p = n^2 + 2nd - 1
//
// That is n(n-1) transition probabilities, n-1 free initial state
// probabilities after normalization, and 2nd Gaussian parameters.
func NumFreeParams(n, d int) int {
	return n*n + 2*n*d - 1
}

// Select returns the candidate minimizing BIC, or nil if every state
// count failed. Ties keep the lowest state count.
func (s *BIC) Select(word string) *Candidate {

	obs, ok := s.corpus.Obs(word)
	if !ok {
		glog.Warningf("word [%s] is not in the corpus", word)
		return nil
	}

	d := obs.Dim()
	logN := math.Log(float64(obs.NumFrames()))

	selectBIC := math.Inf(1)
	var selected *Candidate
	for n := s.minN; n <= s.maxN; n++ {

		m, e := s.trainer.Fit(obs, n)
		if e != nil {
			glog.V(2).Infof("failure on [%s] with %d states: %v", word, n, e)
			continue
		}
		logL, e := m.Score(obs)
		if e != nil {
			glog.V(2).Infof("score failure on [%s] with %d states: %v", word, n, e)
			continue
		}

		bic := -2.0*logL + float64(NumFreeParams(n, d))*logN
		glog.V(2).Infof("[%s] n=%d logL=%e bic=%e", word, n, logL, bic)
		if bic < selectBIC {
			selectBIC = bic
			selected = &Candidate{NStates: n, Model: m}
		}
	}
	return selected
}
