package selector

import (
	"math"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/golang/glog"
	"github.com/gonum/floats"
)

// DIC selects the state count with the highest Discriminative
// Information Criterion:
//
//	DIC = logL(word) - mean(logL(other words))
//
// favoring models that explain their own word better than the rest of
// the vocabulary. Requires a vocabulary of at least two words.
type DIC struct {
	base
}

// NewDIC creates a DIC selector.
func NewDIC(c *corpus.Corpus, t Trainer, config asl.Config) *DIC {
	return &DIC{base: newBase(c, t, config)}
}

// Select returns the candidate maximizing DIC, or nil if every state
// count failed. A failure scoring any other word discards the whole
// candidate. Ties keep the lowest state count.
func (s *DIC) Select(word string) *Candidate {

	obs, ok := s.corpus.Obs(word)
	if !ok {
		glog.Warningf("word [%s] is not in the corpus", word)
		return nil
	}
	if s.corpus.Len() < 2 {
		glog.Warningf("DIC needs at least two words, corpus has %d", s.corpus.Len())
		return nil
	}

	selectDIC := math.Inf(-1)
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

		// Score the same model against every other word. Any failure
		// discards this state count.
		antiLogs := make([]float64, 0, s.corpus.Len()-1)
		for _, other := range s.corpus.Words() {
			if other == word {
				continue
			}
			otherObs, _ := s.corpus.Obs(other)
			anti, e := m.Score(otherObs)
			if e != nil {
				glog.V(2).Infof("score failure on [%s] against [%s] with %d states: %v", word, other, n, e)
				antiLogs = nil
				break
			}
			antiLogs = append(antiLogs, anti)
		}
		if antiLogs == nil {
			continue
		}

		dic := logL - floats.Sum(antiLogs)/float64(len(antiLogs))
		glog.V(2).Infof("[%s] n=%d logL=%e dic=%e", word, n, logL, dic)
		if dic > selectDIC {
			selectDIC = dic
			selected = &Candidate{NStates: n, Model: m}
		}
	}
	return selected
}
