// Package gaussian implements a multivariate Gaussian distribution with
// diagonal covariance.
package gaussian

import (
	"fmt"
	"math"

	"github.com/alphara/AIND-Recognizer/floatx"
	"github.com/gonum/floats"
)

const (
	smallSD       = 0.01
	smallVariance = smallSD * smallSD
	minNumSamples = 0.01
)

var floorv = func(r int, v float64) float64 {
	if v < smallVariance {
		return smallVariance
	}
	return v
}

// Model is a diagonal-covariance Gaussian.
type Model struct {
	ModelName   string    `json:"name,omitempty"`
	ModelDim    int       `json:"dim"`
	NSamples    float64   `json:"nsamples"`
	Sumx        []float64 `json:"sumx,omitempty"`
	Sumxsq      []float64 `json:"sumx_sq,omitempty"`
	Mean        []float64 `json:"mean"`
	StdDev      []float64 `json:"sd"`
	variance    []float64
	varianceInv []float64
	tmpArray    []float64
	const1      float64 // -(D/2)log(2PI) Depends only on ModelDim.
	const2      float64 // const1 - sum(log sigma_i) Also depends on variance.
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// NewModel creates a new Gaussian model.
func NewModel(dim int, options ...Option) *Model {

	g := &Model{
		ModelName: "Gaussian",
		ModelDim:  dim,
	}

	for _, option := range options {
		option(g)
	}

	if g.Mean == nil {
		g.Mean = make([]float64, dim)
	}
	g.variance = make([]float64, dim)
	g.varianceInv = make([]float64, dim)
	if g.StdDev == nil {
		g.StdDev = make([]float64, dim)
		floatx.Apply(floatx.SetValueFunc(smallSD), g.StdDev, nil)
	}
	floatx.Apply(floatx.Sq, g.StdDev, g.variance)
	g.setVariance(g.variance)

	g.Sumx = make([]float64, dim)
	g.Sumxsq = make([]float64, dim)

	g.tmpArray = make([]float64, dim)
	g.const1 = -float64(dim) * math.Log(2.0*math.Pi) / 2.0
	floatx.Apply(floatx.Log, g.variance, g.tmpArray)
	g.const2 = g.const1 - floats.Sum(g.tmpArray)/2.0

	return g
}

// LogProb returns the log probability of an observation vector.
func (g *Model) LogProb(obs []float64) float64 {

	var v float64
	for i, x := range obs {
		s := g.Mean[i] - x
		v += s * s * g.varianceInv[i] / 2.0
	}
	return g.const2 - v
}

// Prob returns the probability of an observation vector.
func (g *Model) Prob(obs []float64) float64 {
	return math.Exp(g.LogProb(obs))
}

// UpdateOne accumulates sufficient statistics for one weighted sample.
func (g *Model) UpdateOne(obs []float64, w float64) {

	floatx.Apply(floatx.ScaleFunc(w), obs, g.tmpArray)
	floats.Add(g.Sumx, g.tmpArray)
	floatx.Apply(floatx.Sq, obs, g.tmpArray)
	floats.Scale(w, g.tmpArray)
	floats.Add(g.Sumxsq, g.tmpArray)
	g.NSamples += w
}

// Estimate computes the model parameters from the accumulated statistics.
func (g *Model) Estimate() error {

	if g.NSamples > minNumSamples {

		// Estimate the mean.
		floatx.Apply(floatx.ScaleFunc(1.0/g.NSamples), g.Sumx, g.Mean)

		// Estimate the variance: sigma_sq = 1/n sumxsq - mean^2.
		tmp := g.variance // borrow as an intermediate array.
		floatx.Apply(floatx.Sq, g.Mean, g.tmpArray)
		floatx.Apply(floatx.ScaleFunc(1.0/g.NSamples), g.Sumxsq, tmp)
		floats.SubTo(g.variance, tmp, g.tmpArray)
		floatx.Apply(floorv, g.variance, nil)
	} else {

		// Not enough training samples.
		floatx.Apply(floatx.SetValueFunc(smallVariance), g.variance, nil)
		floatx.Apply(floatx.SetValueFunc(0), g.Mean, nil)
	}
	g.setVariance(g.variance) // updates varianceInv and StdDev.

	// Update the log Gaussian constant.
	floatx.Apply(floatx.Log, g.variance, g.tmpArray)
	g.const2 = g.const1 - floats.Sum(g.tmpArray)/2.0

	return g.validate()
}

// Clear resets the accumulated statistics.
func (g *Model) Clear() {

	floatx.Clear(g.Sumx)
	floatx.Clear(g.Sumxsq)
	g.NSamples = 0
}

func (g *Model) setVariance(variance []float64) {
	copy(g.variance, variance)
	floatx.Apply(floatx.Inv, g.variance, g.varianceInv)
	floatx.Apply(floatx.Sqrt, g.variance, g.StdDev)
}

func (g *Model) validate() error {

	for i, v := range g.Mean {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("gaussian [%s]: mean element [%d] is not finite", g.ModelName, i)
		}
	}
	for i, v := range g.variance {
		if math.IsNaN(v) || v <= 0 {
			return fmt.Errorf("gaussian [%s]: variance element [%d] is degenerate", g.ModelName, i)
		}
	}
	return nil
}

// SetMean sets the mean vector.
func (g *Model) SetMean(mean []float64) {
	copy(g.Mean, mean)
}

// SetStdDev sets the standard deviation vector.
func (g *Model) SetStdDev(sd []float64) {

	copy(g.StdDev, sd)
	floatx.Apply(floatx.Sq, g.StdDev, g.variance)
	g.setVariance(g.variance)
	floatx.Apply(floatx.Log, g.variance, g.tmpArray)
	g.const2 = g.const1 - floats.Sum(g.tmpArray)/2.0
}

// Name returns the model name.
func (g *Model) Name() string { return g.ModelName }

// Dim returns the dimensionality of the observation vector.
func (g *Model) Dim() int { return g.ModelDim }

// NumSamples returns the accumulated sample weight.
func (g *Model) NumSamples() float64 { return g.NSamples }

// Name option sets the model name.
func Name(name string) Option {
	return func(g *Model) { g.ModelName = name }
}

// Mean option sets the mean vector.
func Mean(mean []float64) Option {
	return func(g *Model) { g.Mean = mean }
}

// StdDev option sets the standard deviation vector.
func StdDev(sd []float64) Option {
	return func(g *Model) { g.StdDev = sd }
}
