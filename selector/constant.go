package selector

import (
	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/golang/glog"
)

// Constant selects the model fitted with a fixed state count. No
// search is performed.
type Constant struct {
	base
	nConstant int
}

// NewConstant creates a constant selector using config.NConstant states.
func NewConstant(c *corpus.Corpus, t Trainer, config asl.Config) *Constant {
	return &Constant{
		base:      newBase(c, t, config),
		nConstant: config.NConstant,
	}
}

// Select fits one model with the fixed state count. Returns nil exactly
// when the fit fails.
func (s *Constant) Select(word string) *Candidate {

	obs, ok := s.corpus.Obs(word)
	if !ok {
		glog.Warningf("word [%s] is not in the corpus", word)
		return nil
	}

	m, e := s.trainer.Fit(obs, s.nConstant)
	if e != nil {
		glog.V(2).Infof("failure on [%s] with %d states: %v", word, s.nConstant, e)
		return nil
	}
	return &Candidate{NStates: s.nConstant, Model: m}
}
