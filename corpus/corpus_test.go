package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(frames ...[]float64) Sequence {
	return Sequence(frames)
}

func TestCombine(t *testing.T) {

	s1 := seq([]float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	s2 := seq([]float64{7, 8})

	obs, e := Combine([]Sequence{s1, s2})
	require.NoError(t, e)
	require.NoError(t, obs.Validate())

	assert.Equal(t, []int{3, 1}, obs.Lengths)
	assert.Equal(t, 4, obs.NumFrames())
	assert.Equal(t, 2, obs.NumSeq())
	assert.Equal(t, 2, obs.Dim())
	assert.Equal(t, []float64{7, 8}, obs.X[3])
}

func TestCombineErrors(t *testing.T) {

	_, e := Combine(nil)
	assert.Error(t, e)

	_, e = Combine([]Sequence{{}})
	assert.Error(t, e)

	// Ragged dims.
	_, e = Combine([]Sequence{seq([]float64{1, 2}), seq([]float64{3})})
	assert.Error(t, e)
}

func TestCombineIndexed(t *testing.T) {

	seqs := []Sequence{
		seq([]float64{0}),
		seq([]float64{1}, []float64{2}),
		seq([]float64{3}),
	}

	obs, e := CombineIndexed([]int{2, 0}, seqs)
	require.NoError(t, e)
	assert.Equal(t, []int{1, 1}, obs.Lengths)
	assert.Equal(t, []float64{3}, obs.X[0])
	assert.Equal(t, []float64{0}, obs.X[1])

	_, e = CombineIndexed([]int{5}, seqs)
	assert.Error(t, e)
}

func TestSplitRoundTrip(t *testing.T) {

	s1 := seq([]float64{1}, []float64{2})
	s2 := seq([]float64{3})
	obs, e := Combine([]Sequence{s1, s2})
	require.NoError(t, e)

	back := obs.Split()
	require.Len(t, back, 2)
	assert.Equal(t, s1, back[0])
	assert.Equal(t, s2, back[1])
}

func TestCorpusOrder(t *testing.T) {

	c := New()
	require.NoError(t, c.Add("BOOK", seq([]float64{1, 1})))
	require.NoError(t, c.Add("CHOCOLATE", seq([]float64{2, 2})))
	require.NoError(t, c.Add("VEGETABLE", seq([]float64{3, 3})))

	// Adding more sequences must not duplicate the word.
	require.NoError(t, c.Add("BOOK", seq([]float64{4, 4}, []float64{5, 5})))

	assert.Equal(t, []string{"BOOK", "CHOCOLATE", "VEGETABLE"}, c.Words())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Dim())

	seqs, ok := c.Sequences("BOOK")
	require.True(t, ok)
	assert.Len(t, seqs, 2)

	obs, ok := c.Obs("BOOK")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, obs.Lengths)
	assert.Equal(t, 3, obs.NumFrames())

	_, ok = c.Obs("FISH")
	assert.False(t, ok)
}

func TestReadCorpus(t *testing.T) {

	data := `{
		"CHOCOLATE": [[[1.0, 2.0], [3.0, 4.0]]],
		"BOOK": [[[5.0, 6.0]], [[7.0, 8.0], [9.0, 10.0]]]
	}`

	c, e := ReadCorpus(strings.NewReader(data))
	require.NoError(t, e)

	// Lexical word order regardless of snapshot key order.
	assert.Equal(t, []string{"BOOK", "CHOCOLATE"}, c.Words())

	obs, ok := c.Obs("BOOK")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, obs.Lengths)
}

func TestReadTestSet(t *testing.T) {

	data := `[
		{"word": "BOOK", "frames": [[1.0, 2.0], [3.0, 4.0]]},
		{"word": "CHOCOLATE", "frames": [[5.0, 6.0]]}
	]`

	ts, e := ReadTestSet(strings.NewReader(data))
	require.NoError(t, e)
	require.Equal(t, 2, ts.Len())

	assert.Equal(t, []string{"BOOK", "CHOCOLATE"}, ts.Ref())
	assert.Equal(t, []int{2}, ts.Items[0].Obs.Lengths)
	assert.Equal(t, []int{1}, ts.Items[1].Obs.Lengths)
}
