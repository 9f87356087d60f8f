package parcel

import (
	"errors"
	"fmt"
	"testing"
)

func TestChunkError_Error(t *testing.T) {
	err := errors.New("something went wrong")
	ce := &ChunkError{
		Chunk: ChunkInfo{Index: 2, Start: 20, Len: 10},
		Err:   err,
	}

	expected := `chunk 2 [20:30) failed: something went wrong`
	if got := ce.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestChunkError_Unwrap(t *testing.T) {
	err := errors.New("original error")
	ce := &ChunkError{
		Chunk: ChunkInfo{Index: 0, Start: 0, Len: 5},
		Err:   err,
	}

	if got := ce.Unwrap(); got != err {
		t.Errorf("Unwrap() = %v, want %v", got, err)
	}
	if !errors.Is(ce, err) {
		t.Error("errors.Is must reach through ChunkError")
	}
}

func TestIsChunkError(t *testing.T) {
	ce := &ChunkError{
		Chunk: ChunkInfo{Index: 1, Start: 10, Len: 10},
		Err:   errors.New("err"),
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			want: false,
		},
		{
			name: "ChunkError",
			err:  ce,
			want: true,
		},
		{
			name: "wrapped ChunkError",
			err:  fmt.Errorf("wrapped: %w", ce),
			want: true,
		},
		{
			name: "joined errors containing ChunkError",
			err:  errors.Join(errors.New("other"), ce),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChunkError(tt.err); got != tt.want {
				t.Errorf("IsChunkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunkOf(t *testing.T) {
	info := ChunkInfo{Index: 3, Start: 30, Len: 10}
	ce := &ChunkError{Chunk: info, Err: errors.New("err")}

	got, ok := ChunkOf(fmt.Errorf("outer: %w", ce))
	if !ok {
		t.Fatal("ChunkOf() ok = false, want true")
	}
	if got != info {
		t.Errorf("ChunkOf() = %+v, want %+v", got, info)
	}

	if _, ok := ChunkOf(errors.New("plain")); ok {
		t.Error("ChunkOf() on plain error must return false")
	}
	if _, ok := ChunkOf(nil); ok {
		t.Error("ChunkOf(nil) must return false")
	}
}

func TestCauseOf(t *testing.T) {
	cause := errors.New("root cause")
	ce := &ChunkError{Chunk: ChunkInfo{Index: 0, Len: 1}, Err: cause}

	if got := CauseOf(ce); got != cause {
		t.Errorf("CauseOf() = %v, want %v", got, cause)
	}

	plain := errors.New("plain")
	if got := CauseOf(plain); got != plain {
		t.Errorf("CauseOf(plain) = %v, want the error itself", got)
	}
	if got := CauseOf(nil); got != nil {
		t.Errorf("CauseOf(nil) = %v, want nil", got)
	}
}

func TestAllChunkErrors(t *testing.T) {
	ce1 := &ChunkError{Chunk: ChunkInfo{Index: 0, Start: 0, Len: 5}, Err: errors.New("a")}
	ce2 := &ChunkError{Chunk: ChunkInfo{Index: 2, Start: 10, Len: 5}, Err: errors.New("b")}

	joined := errors.Join(ce1, fmt.Errorf("wrapped: %w", ce2), errors.New("loose"))
	got := AllChunkErrors(joined)
	if len(got) != 2 {
		t.Fatalf("AllChunkErrors() returned %d errors, want 2", len(got))
	}
	if got[0] != ce1 || got[1] != ce2 {
		t.Error("AllChunkErrors() must preserve join order")
	}

	if AllChunkErrors(nil) != nil {
		t.Error("AllChunkErrors(nil) must be nil")
	}
	if AllChunkErrors(errors.New("plain")) != nil {
		t.Error("AllChunkErrors(plain) must be nil")
	}
}

func TestPanicErrorFormatting(t *testing.T) {
	pe := newPanicError("kaboom")
	if pe.Value != "kaboom" {
		t.Errorf("Value = %v, want kaboom", pe.Value)
	}
	if pe.Stack == "" {
		t.Error("Stack must be captured")
	}
	if pe.Unwrap() != nil {
		t.Error("PanicError must not wrap another error")
	}

	// Re-recovered panics keep their original stack.
	if again := asPanicError(pe); again != pe {
		t.Error("asPanicError must pass through an existing *PanicError")
	}
}
