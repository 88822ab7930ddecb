package diagram

import "testing"

func addInclusion(s *Scene, a, b *Node) *Edge {
	e := s.newCompositionEdge(KindInclusion, a, b, nil, false)
	a.AddEdge(e)
	b.AddEdge(e)
	s.AddItem(e)
	e.UpdatePath()
	return e
}

func TestSwapEdges(t *testing.T) {
	s := newTestScene()
	a := addConcept(s, 0, 0)
	b := addConcept(s, 300, 0)
	e := addInclusion(s, a, b)

	s.UndoStack().Push(NewSwapEdgesCommand([]*Edge{e}))
	if e.Source() != b || e.Target() != a {
		t.Error("swap did not reverse the edge")
	}
	s.UndoStack().Undo()
	if e.Source() != a || e.Target() != b {
		t.Error("undo did not restore the direction")
	}
}

func TestToggleEdgeCompleteMixedSelection(t *testing.T) {
	s := newTestScene()
	a := addConcept(s, 0, 0)
	b := addConcept(s, 300, 0)
	e1 := addInclusion(s, a, b)
	e2 := addInclusion(s, b, a)
	e1.complete = true // mixed: one on, one off

	s.UndoStack().Push(NewToggleEdgeCompleteCommand([]*Edge{e1, e2}))
	if !e1.Complete() || !e2.Complete() {
		t.Error("mixed selection did not turn fully on")
	}

	s.UndoStack().Push(NewToggleEdgeCompleteCommand([]*Edge{e1, e2}))
	if e1.Complete() || e2.Complete() {
		t.Error("uniform selection did not turn fully off")
	}

	s.UndoStack().Undo()
	s.UndoStack().Undo()
	if !e1.Complete() || e2.Complete() {
		t.Error("undo did not restore the mixed state")
	}
}

func TestToggleEdgeFunctional(t *testing.T) {
	s := newTestScene()
	role := addRole(s, 0, 0)
	inv := s.NewNode(KindRoleInverse)
	s.AddItem(inv)
	e := s.newCompositionEdge(KindInput, role, inv, nil, false)
	role.AddEdge(e)
	inv.AddEdge(e)
	s.AddItem(e)
	e.UpdatePath()

	s.UndoStack().Push(NewToggleEdgeFunctionalCommand([]*Edge{e}))
	if !e.Functional() {
		t.Error("toggle did not set the functional marker")
	}
	s.UndoStack().Undo()
	if e.Functional() {
		t.Error("undo left the functional marker set")
	}
}

func TestSetNodeFlag(t *testing.T) {
	s := newTestScene()
	role := addRole(s, 0, 0)

	s.UndoStack().Push(NewSetNodeFlagCommand(role, AxiomTransitive, true))
	if !role.AxiomFlag(AxiomTransitive) {
		t.Error("flag not set")
	}
	if role.AxiomFlag(AxiomSymmetric) {
		t.Error("unrelated flag set")
	}
	s.UndoStack().Undo()
	if role.AxiomFlag(AxiomTransitive) {
		t.Error("undo left the flag set")
	}
}

func TestBringToFront(t *testing.T) {
	s := newTestScene()
	a := addConcept(s, 0, 0)
	b := addConcept(s, 10, 0)

	// b was inserted later and sits on top; restack a above it.
	s.UndoStack().Push(NewBringToFrontCommand(s, []Item{a}))
	if a.ZValue() <= b.ZValue() {
		t.Errorf("a z=%d not above b z=%d", a.ZValue(), b.ZValue())
	}
	if got := s.NodeOnTopOf(a.Pos()); got != a {
		t.Errorf("top node = %v after bring to front, want a", got)
	}
	s.UndoStack().Undo()
	if got := s.NodeOnTopOf(a.Pos()); got != b {
		t.Errorf("top node = %v after undo, want b", got)
	}
}

func TestSendToBack(t *testing.T) {
	s := newTestScene()
	a := addConcept(s, 0, 0)
	b := addConcept(s, 10, 0)

	s.UndoStack().Push(NewSendToBackCommand(s, []Item{b}))
	if b.ZValue() >= a.ZValue() {
		t.Errorf("b z=%d not below a z=%d", b.ZValue(), a.ZValue())
	}
	if got := s.NodeOnTopOf(a.Pos()); got != a {
		t.Errorf("top node = %v after send to back, want a", got)
	}
}

func TestCommandNames(t *testing.T) {
	s := newTestScene()
	n := s.NewNode(KindConcept)
	s.UndoStack().Push(NewAddNodeCommand(s, n))
	if got := s.UndoStack().UndoName(); got != "add concept node" {
		t.Errorf("undo name = %q", got)
	}
}
