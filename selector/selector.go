/*
Package selector picks the best hidden state count for each vocabulary
word. Strategies search an inclusive range of candidate state counts
and return the single best fitted model, or nothing when no candidate
converged. Fit and score failures are recovered at the candidate (or
fold) boundary and never escape Select.
*/
package selector

import (
	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
)

// Model is a fitted sequence model that can score observations.
type Model interface {
	Score(obs corpus.Observations) (float64, error)
}

// Trainer fits candidate models. Implementations fail with an error on
// numerical non-convergence or ill-conditioned covariance.
type Trainer interface {
	Fit(obs corpus.Observations, nstates int) (Model, error)
}

// Candidate is a fitted model tagged with the hidden state count used
// to produce it. The caller owns the returned candidate.
type Candidate struct {
	NStates int
	Model   Model
}

// A Selector picks the best model for one vocabulary word. Returns nil
// when every candidate state count failed to fit or score.
type Selector interface {
	Select(word string) *Candidate
}

// base carries the inputs shared by all strategies.
type base struct {
	corpus  *corpus.Corpus
	trainer Trainer
	minN    int
	maxN    int
}

func newBase(c *corpus.Corpus, t Trainer, config asl.Config) base {
	return base{
		corpus:  c,
		trainer: t,
		minN:    config.MinComponents,
		maxN:    config.MaxComponents,
	}
}

// SelectAll runs a selector over every word of a corpus, in corpus
// order. Words whose candidates all failed are absent from the result.
func SelectAll(s Selector, c *corpus.Corpus) map[string]*Candidate {

	selected := make(map[string]*Candidate)
	for _, word := range c.Words() {
		if cand := s.Select(word); cand != nil {
			selected[word] = cand
		}
	}
	return selected
}
