package hmm

import "fmt"

// FitError reports that training a candidate model failed. Callers
// recover by skipping the candidate state count.
type FitError struct {
	NStates int
	Err     error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("hmm: fit with %d states failed: %v", e.NStates, e.Err)
}

func (e *FitError) Unwrap() error { return e.Err }

// ScoreError reports that evaluating a model against observations
// failed. Callers recover by skipping the model/observation pair.
type ScoreError struct {
	Model string
	Err   error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("hmm: scoring with model [%s] failed: %v", e.Model, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }
