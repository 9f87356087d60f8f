package parcel_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/baxromumarov/parcel"
)

// TestAbortModeTerminatesProcess verifies the Abort error mode in a
// subprocess: a chunk failure must escape its worker goroutine and take
// the process down rather than being aggregated.
func TestAbortModeTerminatesProcess(t *testing.T) {
	mode := os.Getenv("PARCEL_ABORT_MODE")
	if mode != "" {
		switch mode {
		case "error":
			_, _ = parcel.Partition(parcel.ParUnseq.WithChunkSize(5), 0, 20,
				func(start, n int) (int, error) {
					if start == 10 {
						return 0, errors.New("unseq chunk error")
					}
					return n, nil
				},
				func(parts []int) (int, error) { return 0, nil },
			).Wait()
		case "panic":
			_, _ = parcel.Partition(parcel.Par.WithErrorMode(parcel.Abort).WithChunkSize(5), 0, 20,
				func(start, n int) (int, error) {
					if start == 10 {
						panic("unseq chunk panic")
					}
					return n, nil
				},
				func(parts []int) (int, error) { return 0, nil },
			).Wait()
		default:
			panic("unknown abort mode")
		}
		// The failing worker goroutine races our own exit; give the
		// crash time to land. Reaching the deadline means the abort
		// never fired and the parent test reports it.
		time.Sleep(2 * time.Second)
		return
	}

	cases := []struct {
		name string
		mode string
		msg  string
		attr string
	}{
		// The error case dies via a panicking *ChunkError, so the crash
		// output must attribute the failing sub-range.
		{name: "chunk_error", mode: "error", msg: "unseq chunk error", attr: "chunk 2 [10:15)"},
		{name: "chunk_panic", mode: "panic", msg: "unseq chunk panic"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestAbortModeTerminatesProcess$")
			cmd.Env = append(os.Environ(), "PARCEL_ABORT_MODE="+tc.mode)
			out, err := cmd.CombinedOutput()
			if err == nil {
				t.Fatal("expected subprocess to die from the unrecovered chunk failure")
			}
			if !bytes.Contains(out, []byte(tc.msg)) {
				t.Fatalf("expected crash output to contain %q, got:\n%s", tc.msg, out)
			}
			if tc.attr != "" && !bytes.Contains(out, []byte(tc.attr)) {
				t.Fatalf("expected crash output to contain %q, got:\n%s", tc.attr, out)
			}
		})
	}
}

// TestAggregateOverrideOnParUnseq verifies that an explicit Aggregate
// error mode disarms the ParUnseq abort default.
func TestAggregateOverrideOnParUnseq(t *testing.T) {
	_, err := parcel.Partition(parcel.ParUnseq.WithErrorMode(parcel.Aggregate).WithChunkSize(5), 0, 20,
		func(start, n int) (int, error) {
			if start == 10 {
				return 0, errors.New("recoverable after all")
			}
			return n, nil
		},
		func(parts []int) (int, error) { return 0, nil },
	).Wait()
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	if got := len(parcel.AllChunkErrors(err)); got != 1 {
		t.Fatalf("expected 1 chunk error, got %d", got)
	}
}
