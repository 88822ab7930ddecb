package diagram

import (
	"fmt"

	"graphol/geometry"
)

// NodeRecord is the persistence-facing value form of a node. The codec
// packages convert records to and from their wire format; the scene owns
// the conversion to live entities so the index invariants hold on load.
type NodeRecord struct {
	ID          string
	Kind        Kind
	Pos         geometry.Point
	Label       string
	Special     Special
	Restriction Restriction
	Flags       map[Axiom]bool
}

// EdgeRecord is the persistence-facing value form of an edge.
type EdgeRecord struct {
	ID          string
	Kind        Kind
	Source      string
	Target      string
	Breakpoints []geometry.Point
	Complete    bool
	Functional  bool
}

// Record returns the node's persistence value form.
func (n *Node) Record() NodeRecord {
	rec := NodeRecord{
		ID:          n.id,
		Kind:        n.kind,
		Pos:         n.pos,
		Label:       n.label,
		Special:     n.special,
		Restriction: n.restriction,
	}
	if len(n.flags) > 0 {
		rec.Flags = make(map[Axiom]bool, len(n.flags))
		for a, v := range n.flags {
			if v {
				rec.Flags[a] = true
			}
		}
	}
	return rec
}

// Record returns the edge's persistence value form.
func (e *Edge) Record() EdgeRecord {
	return EdgeRecord{
		ID:          e.id,
		Kind:        e.kind,
		Source:      e.source.id,
		Target:      e.target.id,
		Breakpoints: append([]geometry.Point(nil), e.breakpoints...),
		Complete:    e.complete,
		Functional:  e.functional,
	}
}

// RestoreNode materializes a deserialized node into the scene, feeding its
// id to the identity service and indexing it. Loading bypasses the command
// stack: a freshly loaded diagram starts with an empty history.
func (s *Scene) RestoreNode(rec NodeRecord) (*Node, error) {
	if !rec.Kind.IsNodeKind() {
		return nil, fmt.Errorf("restore node %s: %q is not a node kind", rec.ID, rec.Kind)
	}
	n := s.NewNodeWithID(rec.ID, rec.Kind)
	n.pos = rec.Pos
	n.special = rec.Special
	n.restriction = rec.Restriction
	if rec.Label != "" {
		n.label = rec.Label
	}
	for a, v := range rec.Flags {
		if v {
			n.setAxiomFlag(a, true)
		}
	}
	s.AddItem(n)
	return n, nil
}

// RestoreEdge materializes a deserialized edge, resolving its endpoints
// against the nodes already restored.
func (s *Scene) RestoreEdge(rec EdgeRecord) (*Edge, error) {
	if !rec.Kind.IsEdgeKind() {
		return nil, fmt.Errorf("restore edge %s: %q is not an edge kind", rec.ID, rec.Kind)
	}
	source := s.Node(rec.Source)
	target := s.Node(rec.Target)
	if source == nil || target == nil {
		return nil, fmt.Errorf("restore edge %s: endpoint %q or %q not in diagram", rec.ID, rec.Source, rec.Target)
	}
	e := s.NewEdgeWithID(rec.ID, rec.Kind, source, target)
	e.breakpoints = append([]geometry.Point(nil), rec.Breakpoints...)
	e.complete = rec.Complete
	e.functional = rec.Functional
	source.AddEdge(e)
	target.AddEdge(e)
	s.AddItem(e)
	e.UpdatePath()
	return e, nil
}
