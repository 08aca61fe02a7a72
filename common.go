package asl

import (
	"encoding/json"
	"os"

	"github.com/golang/glog"
)

// Result pairs reference words with recognizer hypotheses for one batch.
type Result struct {
	BatchID string   `json:"batchid"`
	Ref     []string `json:"ref"`
	Hyp     []string `json:"hyp"`
}

// ErrorRate returns the fraction of hypotheses that don't match the
// reference. Ref and Hyp must have the same length.
func (r *Result) ErrorRate() float64 {

	if len(r.Ref) != len(r.Hyp) {
		glog.Fatalf("ref length [%d] and hyp length [%d] don't match", len(r.Ref), len(r.Hyp))
	}
	if len(r.Ref) == 0 {
		return 0
	}
	var wrong int
	for i, ref := range r.Ref {
		if r.Hyp[i] != ref {
			wrong++
		}
	}
	return float64(wrong) / float64(len(r.Ref))
}

// Fatal logs the error and exits if err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}

// WriteJSONFile writes v to a file in JSON format.
func WriteJSONFile(fn string, v interface{}) error {

	f, e := os.Create(fn)
	if e != nil {
		return e
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}

// ReadJSONFile decodes a JSON file into v.
func ReadJSONFile(fn string, v interface{}) error {

	f, e := os.Open(fn)
	if e != nil {
		return e
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
