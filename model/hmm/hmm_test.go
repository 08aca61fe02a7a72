package hmm

import (
	"errors"
	"math"
	"testing"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/alphara/AIND-Recognizer/model/gaussian"
	"github.com/gonum/floats"
)

const epsilon = 0.004

func makeObs(t *testing.T, seqs ...corpus.Sequence) corpus.Observations {
	obs, e := corpus.Combine(seqs)
	asl.CheckError(t, e)
	return obs
}

// A single-state model reduces the forward recursion to a sum of
// per-frame output log probs. Great for verifying the scaled alpha.
func makeSingleState(mean, sd float64) *Model {

	g := gaussian.NewModel(1, gaussian.Name("g0"), gaussian.Mean([]float64{mean}), gaussian.StdDev([]float64{sd}))
	return &Model{
		ModelName:     "single",
		NStates:       1,
		ModelDim:      1,
		LogInitProbs:  []float64{0},
		LogTransProbs: [][]float64{{0}},
		States:        []*gaussian.Model{g},
	}
}

func TestScoreSingleState(t *testing.T) {

	m := makeSingleState(1, 1)
	obs := makeObs(t, corpus.Sequence{{1}, {1}, {1}})

	logL, e := m.Score(obs)
	asl.CheckError(t, e)
	t.Logf("logL: %f", logL)

	// 3 * N(1; mean=1, sd=1) = 3 * -0.5*log(2*pi)
	expected := -3.0 * 0.5 * math.Log(2.0*math.Pi)
	asl.CompareFloats(t, expected, logL, "wrong single state log prob", epsilon)
}

func TestScoreAdditiveOverSequences(t *testing.T) {

	m := makeSingleState(0, 2)
	s1 := corpus.Sequence{{0.5}, {-1}}
	s2 := corpus.Sequence{{2}, {0}, {1}}

	l1, e := m.Score(makeObs(t, s1))
	asl.CheckError(t, e)
	l2, e := m.Score(makeObs(t, s2))
	asl.CheckError(t, e)
	l12, e := m.Score(makeObs(t, s1, s2))
	asl.CheckError(t, e)

	asl.CompareFloats(t, l1+l2, l12, "score is not additive over sequences", epsilon)
}

func TestScoreDimMismatch(t *testing.T) {

	m := makeSingleState(0, 1)
	obs := makeObs(t, corpus.Sequence{{1, 2}, {3, 4}})

	_, e := m.Score(obs)
	if e == nil {
		t.Fatal("expected score error for dim mismatch")
	}
	var se *ScoreError
	if !errors.As(e, &se) {
		t.Fatalf("expected *ScoreError, got %T", e)
	}
}

func TestFitErrors(t *testing.T) {

	obs := makeObs(t, corpus.Sequence{{1}, {2}})

	var fe *FitError
	if _, e := Fit(obs, 0); !errors.As(e, &fe) {
		t.Fatalf("expected *FitError for zero states, got %v", e)
	}
	if _, e := Fit(obs, 5); !errors.As(e, &fe) {
		t.Fatalf("expected *FitError for more states than frames, got %v", e)
	}
}

func TestFitTwoStates(t *testing.T) {

	// Sequences emitted by two well-separated states.
	low := []float64{0.1, -0.3, 0.2, 0.0, -0.1, 0.3}
	high := []float64{10.2, 9.8, 10.1, 9.9, 10.3, 9.7}

	var seqs []corpus.Sequence
	for i := 0; i < 3; i++ {
		var seq corpus.Sequence
		for _, v := range low {
			seq = append(seq, []float64{v + float64(i)*0.01})
		}
		for _, v := range high {
			seq = append(seq, []float64{v - float64(i)*0.01})
		}
		seqs = append(seqs, seq)
	}
	obs := makeObs(t, seqs...)

	m, e := Fit(obs, 2, Name("two-state"), Seed(14))
	asl.CheckError(t, e)

	m0 := m.States[0].Mean[0]
	m1 := m.States[1].Mean[0]
	t.Logf("state means: %f %f", m0, m1)
	if m0 > m1 {
		m0, m1 = m1, m0
	}
	asl.CompareFloats(t, 0.06, m0, "wrong low state mean", 0.5)
	asl.CompareFloats(t, 10.0, m1, "wrong high state mean", 0.5)

	logL, e := m.Score(obs)
	asl.CheckError(t, e)
	if math.IsInf(logL, 0) || math.IsNaN(logL) {
		t.Fatalf("degenerate log likelihood: %f", logL)
	}

	// More states should not be needed: the 2-state model must beat a
	// single state on its own training data.
	m1state, e := Fit(obs, 1, Seed(14))
	asl.CheckError(t, e)
	logL1, e := m1state.Score(obs)
	asl.CheckError(t, e)
	t.Logf("logL 2 states: %f, 1 state: %f", logL, logL1)
	if logL <= logL1 {
		t.Errorf("2-state fit [%f] should beat 1-state fit [%f]", logL, logL1)
	}
}

func TestFitDeterministic(t *testing.T) {

	seq := corpus.Sequence{{0.1}, {0.5}, {5.2}, {5.0}, {4.9}, {0.2}}
	obs := makeObs(t, seq)

	a, e := Fit(obs, 2, Seed(14))
	asl.CheckError(t, e)
	b, e := Fit(obs, 2, Seed(14))
	asl.CheckError(t, e)

	if !floats.Equal(a.LogInitProbs, b.LogInitProbs) {
		t.Errorf("init probs differ across identical fits:\n%v\n%v", a.LogInitProbs, b.LogInitProbs)
	}
	for i := range a.States {
		if !floats.Equal(a.States[i].Mean, b.States[i].Mean) {
			t.Errorf("state %d means differ across identical fits", i)
		}
	}

	la, e := a.Score(obs)
	asl.CheckError(t, e)
	lb, e := b.Score(obs)
	asl.CheckError(t, e)
	if la != lb {
		t.Errorf("scores differ across identical fits: %f vs %f", la, lb)
	}
}

func TestScoreSingleFrameSequence(t *testing.T) {

	m := makeSingleState(1, 1)
	obs := makeObs(t, corpus.Sequence{{1}})

	logL, e := m.Score(obs)
	asl.CheckError(t, e)

	expected := -0.5 * math.Log(2.0*math.Pi)
	asl.CompareFloats(t, expected, logL, "wrong single frame log prob", epsilon)
}
