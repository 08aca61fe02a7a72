/*
Package hmm implements an ergodic hidden Markov model with
diagonal-covariance Gaussian emissions. Models are trained with the
Baum-Welch algorithm on concatenated observation sequences and scored
with the scaled forward recursion.
*/
package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/alphara/AIND-Recognizer/floatx"
	"github.com/alphara/AIND-Recognizer/model/gaussian"
	"github.com/golang/glog"
)

const (
	smallNumber = 0.000001
	meanJitter  = 0.01

	// DefaultSeed for reproducible fits.
	DefaultSeed = 33

	// DefaultMaxIter bounds the EM iterations.
	DefaultMaxIter = 20

	// DefaultTol is the log-likelihood improvement below which EM stops.
	DefaultTol = 0.01
)

// Model is a hidden Markov model.
type Model struct {

	// Model name.
	ModelName string `json:"name"`

	// Number of hidden states.
	// N
	NStates int `json:"num_states"`

	// Num elements in the observation vector.
	ModelDim int `json:"dim"`

	// Initial state distribution. [NStates x 1]
	// π(i) = P[q(0) = i]; 0<=i<N
	// => saved in log domain.
	LogInitProbs []float64 `json:"log_init_probs"`

	// State-transition probability distribution matrix (log scale).
	// [NStates x NStates]
	// a(i,j) = log(P[q(t+1) = j | q(t) = i]); 0 <= i,j <= N-1
	LogTransProbs [][]float64 `json:"log_trans_probs"`

	// Observation probability distribution functions. [NStates x 1]
	// b(j,t) = P[o(t) | q(t) = j]
	States []*gaussian.Model `json:"states"`

	// Train params.
	seed    int64
	maxIter int
	tol     float64

	// Accumulators.
	sumInitProbs []float64
	sumXi        [][]float64
	sumGamma     []float64
}

// Option type is used to pass options to Fit().
type Option func(*Model)

// Name option sets the model name.
func Name(name string) Option {
	return func(m *Model) { m.ModelName = name }
}

// Seed sets a seed value for the deterministic initialization jitter.
// Uses default seed value if omitted.
func Seed(seed int64) Option {
	return func(m *Model) { m.seed = seed }
}

// MaxIter option bounds the number of EM iterations.
func MaxIter(n int) Option {
	return func(m *Model) { m.maxIter = n }
}

// Tol option sets the EM convergence threshold.
func Tol(tol float64) Option {
	return func(m *Model) { m.tol = tol }
}

// Fit trains a new model with nstates hidden states on the packed
// observations. Returns a FitError when the observations cannot support
// nstates states or the reestimation degenerates.
func Fit(obs corpus.Observations, nstates int, options ...Option) (*Model, error) {

	if nstates < 1 {
		return nil, &FitError{nstates, fmt.Errorf("num states must be positive")}
	}
	if e := obs.Validate(); e != nil {
		return nil, &FitError{nstates, e}
	}
	if obs.NumFrames() < nstates {
		return nil, &FitError{nstates, fmt.Errorf(
			"not enough frames [%d] to fit [%d] states", obs.NumFrames(), nstates)}
	}

	m := newModel(obs.Dim(), nstates, options...)
	if e := m.initStates(obs); e != nil {
		return nil, &FitError{nstates, e}
	}

	seqs := obs.Split()
	prevLogProb := math.Inf(-1)
	for iter := 0; iter < m.maxIter; iter++ {

		m.clearStats()
		var logProb float64
		for _, seq := range seqs {
			lp, e := m.update(seq)
			if e != nil {
				return nil, &FitError{nstates, e}
			}
			logProb += lp
		}
		if math.IsNaN(logProb) || math.IsInf(logProb, 0) {
			return nil, &FitError{nstates, fmt.Errorf("log prob diverged at iteration %d", iter)}
		}

		if e := m.estimate(len(seqs)); e != nil {
			return nil, &FitError{nstates, e}
		}

		glog.V(3).Infof("hmm [%s] iter %d, num states %d, log prob %e", m.ModelName, iter, nstates, logProb)
		if iter > 0 && logProb-prevLogProb < m.tol {
			break
		}
		prevLogProb = logProb
	}

	return m, nil
}

// Score returns the total log-likelihood of the packed observations
// under the model, summed over the contained sequences. Returns a
// ScoreError on dimensionality mismatch or a degenerate likelihood.
func (m *Model) Score(obs corpus.Observations) (float64, error) {

	if e := obs.Validate(); e != nil {
		return 0, &ScoreError{m.ModelName, e}
	}
	if obs.Dim() != m.ModelDim {
		return 0, &ScoreError{m.ModelName, fmt.Errorf(
			"observation dim [%d] doesn't match model dim [%d]", obs.Dim(), m.ModelDim)}
	}

	var total float64
	for _, seq := range obs.Split() {
		_, logProb, e := m.alpha(seq)
		if e != nil {
			return 0, &ScoreError{m.ModelName, e}
		}
		total += logProb
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, &ScoreError{m.ModelName, fmt.Errorf("degenerate log likelihood")}
	}
	return total, nil
}

func newModel(dim, nstates int, options ...Option) *Model {

	m := &Model{
		ModelName: "HMM",
		NStates:   nstates,
		ModelDim:  dim,
		seed:      DefaultSeed,
		maxIter:   DefaultMaxIter,
		tol:       DefaultTol,
	}
	for _, option := range options {
		option(m)
	}

	// Flat start: uniform initial and transition probabilities.
	m.LogInitProbs = make([]float64, nstates)
	floatx.Apply(floatx.SetValueFunc(-math.Log(float64(nstates))), m.LogInitProbs, nil)
	m.LogTransProbs = floatx.MakeFloat2D(nstates, nstates)
	floatx.Apply2D(func(i, j int, v float64) float64 { return -math.Log(float64(nstates)) },
		m.LogTransProbs, nil)

	m.States = make([]*gaussian.Model, nstates)
	for i := range m.States {
		m.States[i] = gaussian.NewModel(dim, gaussian.Name(stateName(m.ModelName, i)))
	}

	m.sumInitProbs = make([]float64, nstates)
	m.sumXi = floatx.MakeFloat2D(nstates, nstates)
	m.sumGamma = make([]float64, nstates)
	return m
}

// initStates seeds the state output distributions by segmenting every
// sequence into NStates contiguous chunks and pooling chunk i into
// state i. A small seeded jitter breaks symmetry between states that
// received identical chunks.
func (m *Model) initStates(obs corpus.Observations) error {

	for _, seq := range obs.Split() {
		T := len(seq)
		for t, frame := range seq {
			i := t * m.NStates / T
			m.States[i].UpdateOne(frame, 1.0)
		}
	}

	r := rand.New(rand.NewSource(m.seed))
	for _, g := range m.States {
		if e := g.Estimate(); e != nil {
			return e
		}
		for k := range g.Mean {
			g.Mean[k] += r.NormFloat64() * meanJitter * g.StdDev[k]
		}
		g.Clear()
	}
	return nil
}

func (m *Model) clearStats() {

	floatx.Clear(m.sumInitProbs)
	floatx.Clear2D(m.sumXi)
	floatx.Clear(m.sumGamma)
	for _, g := range m.States {
		g.Clear()
	}
}

// update accumulates sufficient statistics for one sequence and returns
// its log probability under the current parameters.
func (m *Model) update(seq corpus.Sequence) (float64, error) {

	α, logProb, e := m.alpha(seq)
	if e != nil {
		return 0, e
	}
	β, e := m.beta(seq)
	if e != nil {
		return 0, e
	}
	γ, e := m.gamma(α, β)
	if e != nil {
		return 0, e
	}
	ζ, e := m.xi(seq, α, β)
	if e != nil {
		return 0, e
	}

	N := m.NStates
	T := len(seq)

	// Reestimation of state transition probabilities for one sequence.
	//
	//                   sum_{t=0}^{T-2} ζ(i,j,t)      <== sumXi
	// a_hat(i,j) = ----------------------------------
	//                   sum_{t=0}^{T-2} γ(i,t)        <== sumGamma [without t = T-1]
	//
	// Reestimation of initial state probabilities for one sequence.
	// pi_hat(i) = γ(i,0)  <== sumInitProbs
	//
	// Reestimation of output probabilities: weigh each observation
	// for state i with γ(i,t).
	for i := 0; i < N; i++ {
		m.sumInitProbs[i] += math.Exp(γ[i][0])
		for t := 0; t < T-1; t++ {
			m.sumGamma[i] += math.Exp(γ[i][t])
			for j := 0; j < N; j++ {
				m.sumXi[i][j] += math.Exp(ζ[i][j][t])
			}
		}
		for t := 0; t < T; t++ {
			m.States[i].UpdateOne(seq[t], math.Exp(γ[i][t]))
		}
	}

	return logProb, nil
}

// estimate computes new model parameters from the accumulated
// statistics. States with no occupancy keep their previous parameters.
func (m *Model) estimate(numSeq int) error {

	N := m.NStates

	for i := 0; i < N; i++ {
		m.LogInitProbs[i] = math.Log(m.sumInitProbs[i] / float64(numSeq))
	}

	for i := 0; i < N; i++ {
		sg := m.sumGamma[i]
		if sg < smallNumber {
			glog.V(3).Infof("hmm [%s]: state %d is starved, keeping previous parameters", m.ModelName, i)
			continue
		}
		for j := 0; j < N; j++ {
			m.LogTransProbs[i][j] = math.Log(m.sumXi[i][j] / sg)
		}
		if e := m.States[i].Estimate(); e != nil {
			return e
		}
	}
	return nil
}

// Compute alphas with per-column scaling. Indices are: α(state, time)
//
// 1. Initialization: α(i,0) =  π(i) b(i,o(0)); 0<=i<N
// 2. Induction:      α(j,t+1) =  sum_{i=0}^{N-1}[α(i,t)a(i,j)] b(j,o(t+1)); 0<=t<T-1; 0<=j<N
// 3. Termination:    P(O/Φ) = sum_{i=0}^{N-1} α(i,T-1)
// For scaling details see Rabiner/Juang.
func (m *Model) alpha(seq corpus.Sequence) (α [][]float64, logProb float64, e error) {

	N := m.NStates
	T := len(seq)
	if T == 0 {
		return nil, 0, fmt.Errorf("empty sequence")
	}
	if len(seq[0]) != m.ModelDim {
		return nil, 0, fmt.Errorf("mismatch in num elements in observations [%d] expected [%d]",
			len(seq[0]), m.ModelDim)
	}

	α = floatx.MakeFloat2D(N, T)

	// 1. Initialization. Add in the log domain.
	for i := 0; i < N; i++ {
		α[i][0] = m.LogInitProbs[i] + m.States[i].LogProb(seq[0])
	}

	if T == 1 {
		// Termination mass is in the first column.
		var sum float64
		for i := 0; i < N; i++ {
			sum += math.Exp(α[i][0])
		}
		return α, math.Log(sum), nil
	}

	// 2. Induction.
	var sumAlphas, sum float64
	for t := 0; t < T-1; t++ {
		sumAlphas = 0
		for j := 0; j < N; j++ {

			sum = 0
			for i := 0; i < N; i++ {
				sum += math.Exp(α[i][t] + m.LogTransProbs[i][j])
			}
			v := math.Log(sum) + m.States[j].LogProb(seq[t+1])
			α[j][t+1] = v

			sumAlphas += math.Exp(v)
		}
		// Applied scale for t independent of j.
		logSumAlphas := math.Log(sumAlphas)
		for j := 0; j < N; j++ {
			α[j][t+1] -= logSumAlphas
		}
		logProb += logSumAlphas
	}

	return
}

// Compute betas with per-column scaling. Indices are: β(state, time)
//
// 1. Initialization: β(i,T-1) = 1;  0<=i<N
// 2. Induction:      β(i,t) =  sum_{j=0}^{N-1} a(i,j) b(j,o(t+1)) β(j,t+1); t=T-2,...,0; 0<=i<N
func (m *Model) beta(seq corpus.Sequence) (β [][]float64, e error) {

	N := m.NStates
	T := len(seq)
	if T == 0 {
		return nil, fmt.Errorf("empty sequence")
	}

	β = floatx.MakeFloat2D(N, T)

	// 1. Initialization. Add in the log domain.
	for i := 0; i < N; i++ {
		β[i][T-1] = 0.0
	}

	// 2. Induction.
	var sumBetas float64
	for t := T - 2; t >= 0; t-- {
		sumBetas = 0
		for i := 0; i < N; i++ {

			var sum float64
			for j := 0; j < N; j++ {

				sum += math.Exp(m.LogTransProbs[i][j] + // a(i,j)
					m.States[j].LogProb(seq[t+1]) + // b(j,o(t+1))
					β[j][t+1]) // β(j,t+1)
			}
			β[i][t] = math.Log(sum)
			sumBetas += sum
		}
		// Applied scale for t independent of i.
		logSumBetas := math.Log(sumBetas)
		for i := 0; i < N; i++ {
			β[i][t] -= logSumBetas
		}
	}

	return
}

// Compute gammas. Indices are: γ(state, time)
//
// γ(i,t) =  α(i,t)β(i,t) / sum_{j=0}^{N-1} α(j,t)β(j,t);  0<=j<N
func (m *Model) gamma(α, β [][]float64) (γ [][]float64, e error) {

	αr, αc := floatx.Check2D(α)
	βr, βc := floatx.Check2D(β)

	if αr != βr || αc != βc {
		return nil, fmt.Errorf("shape mismatch: alpha[%d,%d] beta[%d,%d]", αr, αc, βr, βc)
	}

	T := αc
	N := m.NStates
	if αr != N {
		return nil, fmt.Errorf("num rows [%d] doesn't match num states [%d]", αr, N)
	}

	γ = floatx.MakeFloat2D(N, T)

	for t := 0; t < T; t++ {
		var sum float64
		for i := 0; i < N; i++ {
			x := α[i][t] + β[i][t]
			γ[i][t] = x
			sum += math.Exp(x)
		}

		// Normalize.
		for i := 0; i < N; i++ {
			γ[i][t] -= math.Log(sum)
		}
	}
	return
}

// Compute xi. Indices are: ζ(from, to, time)
//
//	                      α(i,t) a(i,j) b(j,o(t+1)) β(j,t+1)
//	ζ(i,j,t) = ------------------------------------------------------------------
//	           sum_{i=0}^{N-1} sum_{j=0}^{N-1} α(i,t) a(i,j) b(j,o(t+1)) β(j,t+1)
func (m *Model) xi(seq corpus.Sequence, α, β [][]float64) (ζ [][][]float64, e error) {

	a := m.LogTransProbs
	αr, αc := floatx.Check2D(α)
	βr, βc := floatx.Check2D(β)

	if αr != βr || αc != βc {
		return nil, fmt.Errorf("shape mismatch: alpha[%d,%d] beta[%d,%d]", αr, αc, βr, βc)
	}

	T := αc
	N := m.NStates
	if len(seq) != T {
		return nil, fmt.Errorf("mismatch in T, observations has [%d], expected [%d]", len(seq), T)
	}
	if αr != N {
		return nil, fmt.Errorf("num rows [%d] doesn't match num states [%d]", αr, N)
	}

	ζ = floatx.MakeFloat3D(N, N, T)

	for t := 0; t < T-1; t++ {
		var sum float64
		for j := 0; j < N; j++ {
			b := m.States[j].LogProb(seq[t+1])
			for i := 0; i < N; i++ {
				x := α[i][t] + a[i][j] + b + β[j][t+1]
				ζ[i][j][t] = x
				sum += math.Exp(x)
			}
		}
		// Normalize.
		for i := 0; i < N; i++ {
			for j := 0; j < N; j++ {
				ζ[i][j][t] -= math.Log(sum)
			}
		}
	}
	return
}

func stateName(name string, n int) string {
	return fmt.Sprintf("%s-state-%d", name, n)
}

// Name returns the name of the model.
func (m *Model) Name() string { return m.ModelName }

// NumStates returns the hidden state count.
func (m *Model) NumStates() int { return m.NStates }

// Dim is the dimensionality of the observation vector.
func (m *Model) Dim() int { return m.ModelDim }
