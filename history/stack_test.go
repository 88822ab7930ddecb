package history

import "testing"

// counter is a trivial command mutating a shared integer.
type counter struct {
	value *int
	delta int
}

func (c counter) Apply()       { *c.value += c.delta }
func (c counter) Undo()        { *c.value -= c.delta }
func (c counter) Name() string { return "count" }

func TestPushAppliesCommand(t *testing.T) {
	var v int
	s := NewStack(0)
	s.Push(counter{&v, 1})
	if v != 1 {
		t.Fatalf("value = %d after push, want 1", v)
	}
	if s.Count() != 1 {
		t.Errorf("count = %d, want 1", s.Count())
	}
}

func TestUndoRedo(t *testing.T) {
	var v int
	s := NewStack(0)
	s.Push(counter{&v, 1})
	s.Push(counter{&v, 10})

	if !s.CanUndo() {
		t.Fatal("cannot undo with two commands pushed")
	}
	s.Undo()
	if v != 1 {
		t.Errorf("value = %d after one undo, want 1", v)
	}
	s.Undo()
	if v != 0 {
		t.Errorf("value = %d after two undos, want 0", v)
	}
	if s.CanUndo() {
		t.Error("can undo past the bottom")
	}
	s.Redo()
	s.Redo()
	if v != 11 {
		t.Errorf("value = %d after redo, want 11", v)
	}
	if s.CanRedo() {
		t.Error("can redo past the top")
	}
}

func TestPushDiscardsRedoTail(t *testing.T) {
	var v int
	s := NewStack(0)
	s.Push(counter{&v, 1})
	s.Push(counter{&v, 10})
	s.Undo()
	s.Push(counter{&v, 100})

	if s.CanRedo() {
		t.Error("redo tail survived a push")
	}
	if v != 101 {
		t.Errorf("value = %d, want 101", v)
	}
	s.Undo()
	s.Undo()
	if v != 0 {
		t.Errorf("value = %d after full undo, want 0", v)
	}
}

func TestBoundedDepthEvictsOldest(t *testing.T) {
	var v int
	s := NewStack(3)
	for i := 0; i < 5; i++ {
		s.Push(counter{&v, 1})
	}
	if s.Count() != 3 {
		t.Fatalf("count = %d, want limit 3", s.Count())
	}
	// Only the surviving commands can be unwound.
	for s.CanUndo() {
		s.Undo()
	}
	if v != 2 {
		t.Errorf("value = %d after exhausting undo, want 2", v)
	}
}

func TestCleanTracking(t *testing.T) {
	var v int
	s := NewStack(0)
	if !s.IsClean() {
		t.Fatal("fresh stack is dirty")
	}
	s.Push(counter{&v, 1})
	if s.IsClean() {
		t.Error("clean after unsaved push")
	}
	s.SetClean()
	if !s.IsClean() {
		t.Error("dirty right after SetClean")
	}
	s.Undo()
	if s.IsClean() {
		t.Error("clean after undoing past the baseline")
	}
	s.Redo()
	if !s.IsClean() {
		t.Error("dirty after redoing back to the baseline")
	}
}

func TestBaselineLostWhenTailDiscarded(t *testing.T) {
	var v int
	s := NewStack(0)
	s.Push(counter{&v, 1})
	s.Push(counter{&v, 10})
	s.SetClean()
	s.Undo()
	s.Push(counter{&v, 100})
	if s.IsClean() {
		t.Error("clean baseline survived redo-tail discard")
	}
	s.Undo()
	s.Redo()
	if s.IsClean() {
		t.Error("no position should compare clean once the baseline is gone")
	}
}

func TestUndoRedoNames(t *testing.T) {
	var v int
	s := NewStack(0)
	s.Push(counter{&v, 1})
	if s.UndoName() != "count" {
		t.Errorf("undo name = %q", s.UndoName())
	}
	s.Undo()
	if s.RedoName() != "count" {
		t.Errorf("redo name = %q", s.RedoName())
	}
}
