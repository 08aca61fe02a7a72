package corpus

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/golang/glog"
)

// TestItem is one test sequence with its packed observations and,
// when known, the reference word.
type TestItem struct {
	Word string
	Obs  Observations
}

// TestSet is an ordered collection of test sequences.
type TestSet struct {
	Items []TestItem
}

// Len returns the number of test sequences.
func (ts *TestSet) Len() int { return len(ts.Items) }

// Add appends a test sequence.
func (ts *TestSet) Add(word string, seq Sequence) error {

	obs, e := Combine([]Sequence{seq})
	if e != nil {
		return e
	}
	ts.Items = append(ts.Items, TestItem{Word: word, Obs: obs})
	return nil
}

// Ref returns the reference words in test set order.
func (ts *TestSet) Ref() []string {

	ref := make([]string, 0, len(ts.Items))
	for _, item := range ts.Items {
		ref = append(ref, item.Word)
	}
	return ref
}

// testEntry is the snapshot representation of one labeled sequence.
type testEntry struct {
	Word   string      `json:"word"`
	Frames [][]float64 `json:"frames"`
}

// ReadCorpus reads a training corpus snapshot from an io.Reader. The
// snapshot maps each word to its list of sequences. Words are added in
// lexical order so the corpus iterates deterministically.
func ReadCorpus(r io.Reader) (*Corpus, error) {

	var snapshot map[string][][][]float64
	if e := json.NewDecoder(r).Decode(&snapshot); e != nil {
		return nil, e
	}

	words := make([]string, 0, len(snapshot))
	for word := range snapshot {
		words = append(words, word)
	}
	sort.Strings(words)

	c := New()
	for _, word := range words {
		seqs := make([]Sequence, 0, len(snapshot[word]))
		for _, s := range snapshot[word] {
			seqs = append(seqs, Sequence(s))
		}
		if e := c.Add(word, seqs...); e != nil {
			return nil, e
		}
	}
	glog.V(2).Infof("read corpus with %d words", c.Len())
	return c, nil
}

// ReadCorpusFile reads a training corpus snapshot from a file.
func ReadCorpusFile(fn string) (*Corpus, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadCorpus(f)
}

// ReadTestSet reads a test set snapshot from an io.Reader. The snapshot
// is an ordered list of labeled sequences; output order follows the
// snapshot order.
func ReadTestSet(r io.Reader) (*TestSet, error) {

	var entries []testEntry
	if e := json.NewDecoder(r).Decode(&entries); e != nil {
		return nil, e
	}

	ts := &TestSet{}
	for _, entry := range entries {
		if e := ts.Add(entry.Word, Sequence(entry.Frames)); e != nil {
			return nil, e
		}
	}
	glog.V(2).Infof("read test set with %d sequences", ts.Len())
	return ts, nil
}

// ReadTestSetFile reads a test set snapshot from a file.
func ReadTestSetFile(fn string) (*TestSet, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadTestSet(f)
}
