package profile

import (
	"testing"

	"graphol/diagram"
	"graphol/geometry"
)

func pair(s *diagram.Scene, sk, tk diagram.Kind) (*diagram.Node, *diagram.Node) {
	a := s.NewNode(sk)
	a.SetPos(geometry.Point{X: 0, Y: 0})
	s.AddItem(a)
	b := s.NewNode(tk)
	b.SetPos(geometry.Point{X: 300, Y: 0})
	s.AddItem(b)
	return a, b
}

func TestBasicRules(t *testing.T) {
	tests := []struct {
		name   string
		source diagram.Kind
		edge   diagram.Kind
		target diagram.Kind
		valid  bool
	}{
		{"concept inclusion", diagram.KindConcept, diagram.KindInclusion, diagram.KindConcept, true},
		{"role equivalence", diagram.KindRole, diagram.KindEquivalence, diagram.KindRole, true},
		{"input into union", diagram.KindConcept, diagram.KindInput, diagram.KindUnion, true},
		{"input into restriction", diagram.KindRole, diagram.KindInput, diagram.KindDomainRestriction, true},
		{"input into predicate", diagram.KindConcept, diagram.KindInput, diagram.KindConcept, false},
		{"membership from individual", diagram.KindIndividual, diagram.KindMembership, diagram.KindConcept, true},
		{"membership from concept", diagram.KindConcept, diagram.KindMembership, diagram.KindConcept, false},
		{"instance-of from assertion", diagram.KindPropertyAssertion, diagram.KindInstanceOf, diagram.KindRole, true},
		{"assertion in inclusion", diagram.KindPropertyAssertion, diagram.KindInclusion, diagram.KindConcept, false},
	}
	rules := BasicRules{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := diagram.NewScene(0, 0, nil)
			a, b := pair(s, tt.source, tt.target)
			e := s.NewEdge(tt.edge, a)
			r := rules.Check(a, e, b)
			if r.Valid != tt.valid {
				t.Errorf("valid = %v (%q), want %v", r.Valid, r.Message, tt.valid)
			}
			if !r.Valid && r.Message == "" {
				t.Error("invalid result carries no message")
			}
		})
	}
}

func TestBasicRulesRejectSelfConnection(t *testing.T) {
	s := diagram.NewScene(0, 0, nil)
	a, _ := pair(s, diagram.KindConcept, diagram.KindConcept)
	e := s.NewEdge(diagram.KindInclusion, a)
	if r := (BasicRules{}).Check(a, e, a); r.Valid {
		t.Error("self connection accepted")
	}
}

func buildScene(t *testing.T) *diagram.Scene {
	t.Helper()
	s := diagram.NewScene(0, 0, nil)
	a, b := pair(s, diagram.KindConcept, diagram.KindConcept)
	c := s.NewNode(diagram.KindIndividual)
	c.SetPos(geometry.Point{X: 0, Y: 300})
	s.AddItem(c)

	good := s.NewEdgeWithID("e0", diagram.KindInclusion, a, b)
	a.AddEdge(good)
	b.AddEdge(good)
	s.AddItem(good)

	// Input edge into a predicate node: structurally invalid.
	bad := s.NewEdgeWithID("e1", diagram.KindInput, c, b)
	c.AddEdge(bad)
	b.AddEdge(bad)
	s.AddItem(bad)
	return s
}

func TestSweepFindsViolations(t *testing.T) {
	s := buildScene(t)
	issues := NewSweep(s, BasicRules{}).Run()
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1", len(issues))
	}
	if issues[0].EdgeID != "e1" {
		t.Errorf("issue edge = %q, want e1", issues[0].EdgeID)
	}
}

func TestSweepStepsOneEdgeAtATime(t *testing.T) {
	s := buildScene(t)
	w := NewSweep(s, BasicRules{})

	if checked, total := w.Progress(); checked != 0 || total != 2 {
		t.Fatalf("progress = %d/%d before stepping", checked, total)
	}
	if !w.Step() {
		t.Fatal("sweep reported done after first of two edges")
	}
	if checked, _ := w.Progress(); checked != 1 {
		t.Errorf("checked = %d after one step", checked)
	}
	if w.Step() {
		t.Error("sweep not done after last edge")
	}
	if !w.Done() {
		t.Error("finished sweep not done")
	}
}

func TestSweepAbort(t *testing.T) {
	s := buildScene(t)
	w := NewSweep(s, BasicRules{})
	w.Step()
	w.Abort()
	if w.Step() {
		t.Error("aborted sweep kept stepping")
	}
	if checked, _ := w.Progress(); checked != 1 {
		t.Errorf("checked = %d after abort, want 1", checked)
	}
}

func TestSweepNilCheckerAcceptsEverything(t *testing.T) {
	s := buildScene(t)
	if issues := NewSweep(s, nil).Run(); len(issues) != 0 {
		t.Errorf("nil checker produced %d issues", len(issues))
	}
}
