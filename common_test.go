package asl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {

	x := []float64{1.1, 2.2, 3.3}
	var y []float64

	fn := filepath.Join(os.TempDir(), "floats.json")
	WriteJSONFile(fn, x)
	t.Logf("Wrote to temp file: %s\n", fn)

	// Read back.
	e := ReadJSONFile(fn, &y)
	if e != nil {
		t.Fatal(e)
	}

	t.Logf("Original:%v", x)
	t.Logf("Read back from file:%v", y)

	for k, v := range x {
		if v != y[k] {
			t.Fatal("write/read mismatched")
		}
	}
}

func TestErrorRate(t *testing.T) {

	r := Result{
		BatchID: "test",
		Ref:     []string{"BOOK", "CHOCOLATE", "VEGETABLE", "FISH"},
		Hyp:     []string{"BOOK", "CHOCOLATE", "FISH", "FISH"},
	}

	rate := r.ErrorRate()
	CompareFloats(t, 0.25, rate, "wrong error rate", 0.0001)

	empty := Result{}
	if empty.ErrorRate() != 0 {
		t.Fatalf("expected zero error rate for empty result")
	}
}
