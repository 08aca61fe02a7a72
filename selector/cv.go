package selector

import (
	"math"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/golang/glog"
	"github.com/gonum/floats"
)

// CrossValidation selects the state count with the highest average
// held-out log-likelihood over min(nSplits, number of sequences)
// deterministic folds. A word with a single sequence is fitted and
// scored on that sequence directly.
//
// The winning state count is refitted once on the word's full
// observations; if that refit fails the model from the last successful
// fold is returned instead.
type CrossValidation struct {
	base
	nSplits int
}

// NewCrossValidation creates a cross-validation selector with
// config.NSplits max folds. Fewer than two splits cannot produce a
// held-out fold, so the fold count is clamped to two.
func NewCrossValidation(c *corpus.Corpus, t Trainer, config asl.Config) *CrossValidation {

	nSplits := config.NSplits
	if nSplits < 2 {
		nSplits = 2
	}
	return &CrossValidation{
		base:    newBase(c, t, config),
		nSplits: nSplits,
	}
}

// Select returns the candidate with the best average held-out
// log-likelihood, or nil if every state count failed. Ties keep the
// lowest state count.
func (s *CrossValidation) Select(word string) *Candidate {

	seqs, ok := s.corpus.Sequences(word)
	if !ok {
		glog.Warningf("word [%s] is not in the corpus", word)
		return nil
	}
	obs, _ := s.corpus.Obs(word)

	selectAvg := math.Inf(-1)
	var selected *Candidate
	for n := s.minN; n <= s.maxN; n++ {

		var logs []float64
		var foldModel Model

		if len(seqs) == 1 {
			// Degenerate case: fit and score on the single sequence.
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
			logs = append(logs, logL)
			foldModel = m
		} else {
			k := s.nSplits
			if len(seqs) < k {
				k = len(seqs)
			}
			for _, fold := range KFold(len(seqs), k) {

				trainObs, e := corpus.CombineIndexed(fold.Train, seqs)
				if e != nil {
					glog.V(2).Infof("fold combine failure on [%s]: %v", word, e)
					continue
				}
				testObs, e := corpus.CombineIndexed(fold.Test, seqs)
				if e != nil {
					glog.V(2).Infof("fold combine failure on [%s]: %v", word, e)
					continue
				}

				m, e := s.trainer.Fit(trainObs, n)
				if e != nil {
					glog.V(2).Infof("fold failure on [%s] with %d states: %v", word, n, e)
					continue
				}
				logL, e := m.Score(testObs)
				if e != nil {
					glog.V(2).Infof("fold score failure on [%s] with %d states: %v", word, n, e)
					continue
				}
				logs = append(logs, logL)
				foldModel = m
			}
		}

		if len(logs) == 0 {
			continue
		}
		avg := floats.Sum(logs) / float64(len(logs))
		glog.V(2).Infof("[%s] n=%d folds=%d avg logL=%e", word, n, len(logs), avg)
		if avg > selectAvg {
			selectAvg = avg
			selected = &Candidate{NStates: n, Model: foldModel}
		}
	}

	if selected == nil {
		return nil
	}

	// Refit the winner on the full observations. The fold model only
	// saw a training subset; keep it as a fallback if the refit fails.
	if m, e := s.trainer.Fit(obs, selected.NStates); e == nil {
		selected.Model = m
	} else {
		glog.V(2).Infof("refit failure on [%s] with %d states, keeping fold model: %v",
			word, selected.NStates, e)
	}
	return selected
}
