// Package corpus packs word-labeled observation sequences into the
// concatenated representation consumed by the model trainers.
package corpus

import (
	"fmt"

	"github.com/gonum/floats"
)

// A Sequence is an ordered list of fixed-dimension feature vectors.
type Sequence [][]float64

// Observations is one or more sequences for a word stacked vertically.
// Lengths records the frame count of each contributing sequence so that
// sum(Lengths) == len(X).
type Observations struct {
	X       [][]float64 `json:"x"`
	Lengths []int       `json:"lengths"`
}

// NumFrames returns the total frame count across all sequences.
func (o Observations) NumFrames() int {
	var n int
	for _, l := range o.Lengths {
		n += l
	}
	return n
}

// NumSeq returns the number of concatenated sequences.
func (o Observations) NumSeq() int { return len(o.Lengths) }

// Dim returns the feature vector dimensionality.
func (o Observations) Dim() int {
	if len(o.X) == 0 {
		return 0
	}
	return len(o.X[0])
}

// Validate checks the packing invariants.
func (o Observations) Validate() error {

	if o.NumFrames() != len(o.X) {
		return fmt.Errorf("corpus: sum of lengths [%d] doesn't match num frames [%d]",
			o.NumFrames(), len(o.X))
	}
	d := o.Dim()
	for i, frame := range o.X {
		if len(frame) != d {
			return fmt.Errorf("corpus: frame [%d] has dim [%d], expected [%d]", i, len(frame), d)
		}
	}
	return nil
}

// Split returns the packed observations one sequence at a time.
func (o Observations) Split() []Sequence {

	seqs := make([]Sequence, 0, len(o.Lengths))
	var p int
	for _, l := range o.Lengths {
		seqs = append(seqs, Sequence(o.X[p:p+l]))
		p += l
	}
	return seqs
}

// Combine stacks sequences into a single set of observations.
func Combine(seqs []Sequence) (Observations, error) {

	if len(seqs) == 0 {
		return Observations{}, fmt.Errorf("corpus: no sequences to combine")
	}

	var obs Observations
	d := -1
	for i, seq := range seqs {
		if len(seq) == 0 {
			return Observations{}, fmt.Errorf("corpus: sequence [%d] is empty", i)
		}
		for _, frame := range seq {
			if d < 0 {
				d = len(frame)
			}
			if len(frame) != d {
				return Observations{}, fmt.Errorf(
					"corpus: frame dim [%d] in sequence [%d] doesn't match [%d]", len(frame), i, d)
			}
			obs.X = append(obs.X, frame)
		}
		obs.Lengths = append(obs.Lengths, len(seq))
	}
	return obs, nil
}

// CombineIndexed stacks the sequences selected by index, in index order.
// Used to build the training and held-out sides of a fold.
func CombineIndexed(index []int, seqs []Sequence) (Observations, error) {

	selected := make([]Sequence, 0, len(index))
	for _, i := range index {
		if i < 0 || i >= len(seqs) {
			return Observations{}, fmt.Errorf("corpus: sequence index [%d] out of range [0,%d)", i, len(seqs))
		}
		selected = append(selected, seqs[i])
	}
	return Combine(selected)
}

// Corpus indexes the sequences and packed observations of a vocabulary.
// Words iterate in insertion order. A Corpus is a read-only snapshot once
// built.
type Corpus struct {
	words []string
	seqs  map[string][]Sequence
	obs   map[string]Observations
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{
		seqs: make(map[string][]Sequence),
		obs:  make(map[string]Observations),
	}
}

// Add appends sequences to a word, creating the word if needed, and
// repacks the word's observations.
func (c *Corpus) Add(word string, seqs ...Sequence) error {

	if len(seqs) == 0 {
		return fmt.Errorf("corpus: no sequences for word [%s]", word)
	}
	if _, ok := c.seqs[word]; !ok {
		c.words = append(c.words, word)
	}
	c.seqs[word] = append(c.seqs[word], seqs...)

	obs, e := Combine(c.seqs[word])
	if e != nil {
		return e
	}
	c.obs[word] = obs
	return nil
}

// Words returns the vocabulary in insertion order.
func (c *Corpus) Words() []string {
	return append([]string(nil), c.words...)
}

// Len returns the vocabulary size.
func (c *Corpus) Len() int { return len(c.words) }

// Sequences returns the raw sequence list for a word.
func (c *Corpus) Sequences(word string) ([]Sequence, bool) {
	s, ok := c.seqs[word]
	return s, ok
}

// Obs returns the packed observations for a word.
func (c *Corpus) Obs(word string) (Observations, bool) {
	o, ok := c.obs[word]
	return o, ok
}

// Dim returns the feature dimensionality of the corpus, zero if empty.
func (c *Corpus) Dim() int {
	if len(c.words) == 0 {
		return 0
	}
	return c.obs[c.words[0]].Dim()
}

// Equal returns true if two observation sets hold the same values.
func (o Observations) Equal(other Observations) bool {

	if len(o.X) != len(other.X) || len(o.Lengths) != len(other.Lengths) {
		return false
	}
	for i := range o.Lengths {
		if o.Lengths[i] != other.Lengths[i] {
			return false
		}
	}
	for i := range o.X {
		if !floats.Equal(o.X[i], other.X[i]) {
			return false
		}
	}
	return true
}
