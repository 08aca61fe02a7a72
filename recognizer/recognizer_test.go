package recognizer

import (
	"fmt"
	"math"
	"testing"

	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScorer returns a canned log-likelihood per test sequence frame
// count, or an error.
type fakeScorer struct {
	logLs map[int]float64
	err   error
}

func (s *fakeScorer) Score(obs corpus.Observations) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.logLs[obs.NumFrames()], nil
}

func makeTestSet(t *testing.T, lengths ...int) *corpus.TestSet {

	ts := &corpus.TestSet{}
	for _, l := range lengths {
		seq := make(corpus.Sequence, l)
		for i := range seq {
			seq[i] = []float64{float64(l)}
		}
		require.NoError(t, ts.Add(fmt.Sprintf("ref-%d", l), seq))
	}
	return ts
}

func TestRecognize(t *testing.T) {

	models := NewModelSet()
	models.Add("A", &fakeScorer{logLs: map[int]float64{3: -10, 5: -60}})
	models.Add("B", &fakeScorer{logLs: map[int]float64{3: -40, 5: -20}})

	testSet := makeTestSet(t, 3, 5)
	results := Recognize(models, testSet)
	require.Len(t, results, 2)

	// One entry per word model in each row.
	for _, r := range results {
		assert.Len(t, r.Probs, 2)
	}

	assert.Equal(t, -10.0, results[0].Probs["A"])
	assert.Equal(t, -40.0, results[0].Probs["B"])
	assert.Equal(t, "A", results[0].Guess)

	assert.Equal(t, "B", results[1].Guess)
	assert.Equal(t, []string{"A", "B"}, Guesses(results))
}

func TestRecognizeScoreFailure(t *testing.T) {

	models := NewModelSet()
	models.Add("A", &fakeScorer{logLs: map[int]float64{3: -10}})
	models.Add("B", &fakeScorer{err: fmt.Errorf("dimensionality mismatch")})

	results := Recognize(models, makeTestSet(t, 3))
	require.Len(t, results, 1)

	// The failing word records exactly negative infinity and can never
	// displace an earlier successful score.
	assert.True(t, math.IsInf(results[0].Probs["B"], -1))
	assert.Equal(t, "A", results[0].Guess)
}

func TestRecognizeFailureBeforeSuccess(t *testing.T) {

	// A fails first; the guess must come from the later success, not a
	// stale comparison.
	models := NewModelSet()
	models.Add("A", &fakeScorer{err: fmt.Errorf("degenerate likelihood")})
	models.Add("B", &fakeScorer{logLs: map[int]float64{3: -99}})

	results := Recognize(models, makeTestSet(t, 3))
	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].Guess)
}

func TestRecognizeAllFail(t *testing.T) {

	models := NewModelSet()
	models.Add("A", &fakeScorer{err: fmt.Errorf("bad model")})
	models.Add("B", &fakeScorer{err: fmt.Errorf("bad model")})

	results := Recognize(models, makeTestSet(t, 3))
	require.Len(t, results, 1)
	assert.Equal(t, "", results[0].Guess)
	assert.True(t, math.IsInf(results[0].Probs["A"], -1))
	assert.True(t, math.IsInf(results[0].Probs["B"], -1))
}

func TestRecognizeTieKeepsFirstWord(t *testing.T) {

	models := NewModelSet()
	models.Add("B", &fakeScorer{logLs: map[int]float64{3: -5}})
	models.Add("A", &fakeScorer{logLs: map[int]float64{3: -5}})

	results := Recognize(models, makeTestSet(t, 3))
	require.Len(t, results, 1)

	// B was inserted first and wins the tie under strict comparison.
	assert.Equal(t, "B", results[0].Guess)
}

func TestRecognizeEmptyModelSet(t *testing.T) {

	results := Recognize(NewModelSet(), makeTestSet(t, 3, 4))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Empty(t, r.Probs)
		assert.Equal(t, "", r.Guess)
	}
}

func TestRecognizeOrderMatchesTestSet(t *testing.T) {

	models := NewModelSet()
	models.Add("A", &fakeScorer{logLs: map[int]float64{2: -1, 3: -2, 4: -3}})

	results := Recognize(models, makeTestSet(t, 4, 2, 3))
	require.Len(t, results, 3)
	assert.Equal(t, -3.0, results[0].Probs["A"])
	assert.Equal(t, -1.0, results[1].Probs["A"])
	assert.Equal(t, -2.0, results[2].Probs["A"])
}

func TestModelSetReAdd(t *testing.T) {

	models := NewModelSet()
	first := &fakeScorer{logLs: map[int]float64{3: -1}}
	second := &fakeScorer{logLs: map[int]float64{3: -2}}

	models.Add("A", first)
	models.Add("B", first)
	models.Add("A", second)

	assert.Equal(t, []string{"A", "B"}, models.Words())
	m, ok := models.Model("A")
	require.True(t, ok)
	assert.Same(t, second, m.(*fakeScorer))
}
