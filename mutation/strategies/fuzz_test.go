package strategies

import (
	"strings"
	"testing"

	"github.com/AgnopraxLab/mutkit/filler"
	"github.com/AgnopraxLab/mutkit/mutation"
)

// FuzzStrategies drives every strategy with decisions taken from the fuzz
// input itself.
func FuzzStrategies(f *testing.F) {
	f.Add([]byte("G(IJ)"), []byte{1, 2, 3})
	f.Add([]byte("a\nb\nc\n"), []byte{0, 0, 0, 0})
	f.Add([]byte("x=-12 y=7"), []byte{0xff, 0x10})
	f.Add([]byte{0x00, 0xff}, []byte{})

	all := All(nil)
	f.Fuzz(func(t *testing.T, data, decisions []byte) {
		for _, s := range all {
			src := filler.NewFiller(decisions)
			res, err := s.Mutate(data, src)
			if err != nil {
				if mutation.CodeOf(err) == 0 {
					t.Fatalf("%s: untyped error %v", s.Name(), err)
				}
				if s.CanMutate(data) && mutation.CodeOf(err) != mutation.ConfigurationError && mutation.CodeOf(err) != mutation.UnexpectedError {
					t.Fatalf("%s: failed on accepted input %q: %v", s.Name(), data, err)
				}
				continue
			}
			if res.NoOp {
				if string(res.Data) != string(data) {
					t.Fatalf("%s: no-op changed the data", s.Name())
				}
				continue
			}
			if strings.HasPrefix(s.Name(), "radamsa.") && (len(res.Data) == 0 || res.Data[len(res.Data)-1] != Terminator) {
				t.Fatalf("%s: missing terminator", s.Name())
			}
		}
	})
}
