/*
Package recognizer ranks test sequences against a set of per-word
models. Every test sequence is scored against every model; the word
whose model assigns the highest log-likelihood becomes the guess.
*/
package recognizer

import (
	"math"

	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/golang/glog"
)

// Scorer computes the log-likelihood of packed observations.
type Scorer interface {
	Score(obs corpus.Observations) (float64, error)
}

// ModelSet maps words to their selected models, preserving insertion
// order for iteration and tie-breaking.
type ModelSet struct {
	words  []string
	models map[string]Scorer
}

// NewModelSet creates an empty model set.
func NewModelSet() *ModelSet {
	return &ModelSet{models: make(map[string]Scorer)}
}

// Add inserts a word model. Re-adding a word replaces its model but
// keeps its original position.
func (s *ModelSet) Add(word string, m Scorer) {

	if _, ok := s.models[word]; !ok {
		s.words = append(s.words, word)
	}
	s.models[word] = m
}

// Words returns the words in insertion order.
func (s *ModelSet) Words() []string {
	return append([]string(nil), s.words...)
}

// Model returns the model for a word.
func (s *ModelSet) Model(word string) (Scorer, bool) {
	m, ok := s.models[word]
	return m, ok
}

// Len returns the number of word models.
func (s *ModelSet) Len() int { return len(s.words) }

// Result holds the scores of one test sequence against every word
// model and the best guess. Probs values are log-likelihoods, negative
// infinity where scoring failed. Guess is empty when no model scored
// successfully.
type Result struct {
	Probs map[string]float64
	Guess string
}

// Recognize scores every test sequence against every word model.
// Output order matches the test set order. Scoring failures are local:
// the failing word gets a negative infinity entry and the scan
// continues.
func Recognize(models *ModelSet, testSet *corpus.TestSet) []Result {

	results := make([]Result, 0, testSet.Len())
	for _, item := range testSet.Items {

		probs := make(map[string]float64, models.Len())
		best := math.Inf(-1)
		var guess string

		for _, word := range models.words {
			m := models.models[word]

			logL, e := m.Score(item.Obs)
			if e != nil {
				glog.V(2).Infof("score failure for word [%s]: %v", word, e)
				logL = math.Inf(-1)
			}
			probs[word] = logL

			// Strict comparison of the value just recorded: a failed
			// score can never win and ties keep the first word.
			if logL > best {
				best = logL
				guess = word
			}
		}

		results = append(results, Result{Probs: probs, Guess: guess})
	}
	return results
}

// Guesses extracts the guessed words in result order.
func Guesses(results []Result) []string {

	guesses := make([]string, 0, len(results))
	for _, r := range results {
		guesses = append(guesses, r.Guess)
	}
	return guesses
}
