package history

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestHistoryUndoRedoLawsProperty checks the three laws a commit-based undo
// stack must satisfy for any sequence of committed edits: undoing all the
// way back reaches the starting value, redoing all the way forward reaches
// the last committed value, and undo immediately followed by redo at any
// point is the identity.
func TestHistoryUndoRedoLawsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("undoing every generation returns to the start value", prop.ForAll(
		func(start int, edits []int) bool {
			s := New([]any{start})
			for _, v := range edits {
				s.Set(0, v)
				s.Commit()
			}
			for range edits {
				if err := s.Undo(); err != nil {
					return false
				}
			}
			if s.Get(0) != start {
				return false
			}
			return s.Undo() == ErrNoMoreUndo
		},
		gen.Int(),
		gen.SliceOf(gen.Int()),
	))

	properties.Property("redoing every generation returns to the last committed value", prop.ForAll(
		func(start int, edits []int) bool {
			if len(edits) == 0 {
				return true
			}
			s := New([]any{start})
			for _, v := range edits {
				s.Set(0, v)
				s.Commit()
			}
			for range edits {
				_ = s.Undo()
			}
			for range edits {
				if err := s.Redo(); err != nil {
					return false
				}
			}
			want := edits[len(edits)-1]
			if s.Get(0) != want {
				return false
			}
			return s.Redo() == ErrNoMoreRedo
		},
		gen.Int(),
		gen.SliceOf(gen.Int()),
	))

	properties.Property("undo immediately followed by redo is the identity", prop.ForAll(
		func(start int, edits []int) bool {
			if len(edits) == 0 {
				return true
			}
			s := New([]any{start})
			for _, v := range edits {
				s.Set(0, v)
				s.Commit()
			}
			before := s.Get(0)
			if err := s.Undo(); err != nil {
				return false
			}
			if err := s.Redo(); err != nil {
				return false
			}
			return s.Get(0) == before
		},
		gen.Int(),
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
