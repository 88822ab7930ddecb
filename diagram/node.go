package diagram

import "graphol/geometry"

// Restriction qualifies domain and range restriction nodes.
type Restriction int

const (
	RestrictionExists Restriction = iota
	RestrictionForall
	RestrictionSelf
	RestrictionCardinality
)

// String returns the label text composed for the restriction.
func (r Restriction) String() string {
	switch r {
	case RestrictionExists:
		return "exists"
	case RestrictionForall:
		return "forall"
	case RestrictionSelf:
		return "self"
	case RestrictionCardinality:
		return "(min, max)"
	default:
		return "exists"
	}
}

// Axiom identifies the role/attribute axioms that can be composed from a
// single toggle action. The names form the closed enumeration shared with
// the UI action layer.
type Axiom int

const (
	AxiomFunctional Axiom = iota
	AxiomInverseFunctional
	AxiomSymmetric
	AxiomAsymmetric
	AxiomReflexive
	AxiomIrreflexive
	AxiomTransitive
	AxiomDomain
	AxiomRange
)

var axiomNames = map[Axiom]string{
	AxiomFunctional:        "functional",
	AxiomInverseFunctional: "inverse-functional",
	AxiomSymmetric:         "symmetric",
	AxiomAsymmetric:        "asymmetric",
	AxiomReflexive:         "reflexive",
	AxiomIrreflexive:       "irreflexive",
	AxiomTransitive:        "transitive",
	AxiomDomain:            "domain",
	AxiomRange:             "range",
}

// String returns the axiom name shared with the UI action layer.
func (a Axiom) String() string {
	return axiomNames[a]
}

// HasFlag reports whether the axiom is tracked as a boolean flag on the
// source node. Domain and range declarations only exist as subgraphs.
func (a Axiom) HasFlag() bool {
	return a != AxiomDomain && a != AxiomRange
}

// Special marks predicate nodes that denote a reserved OWL entity instead
// of a user-named one. Special nodes keep a fixed label and are excluded
// from the label index.
type Special string

const (
	SpecialNone   Special = ""
	SpecialTop    Special = "TOP"
	SpecialBottom Special = "BOTTOM"
)

// Node is a diagram entity with geometry, identity and a typed capability
// set. Its id is immutable after creation; position, label and flags mutate
// only through commands pushed on the scene's command stack.
type Node struct {
	id          string
	kind        Kind
	scene       *Scene
	pos         geometry.Point
	label       string
	special     Special
	restriction Restriction
	selected    bool
	z           int
	edges       []*Edge
	anchors     map[*Edge]geometry.Point
	flags       map[Axiom]bool
}

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// IsNode reports true for nodes.
func (n *Node) IsNode() bool { return true }

// IsEdge reports false for nodes.
func (n *Node) IsEdge() bool { return false }

// Scene returns the owning diagram scene (non-owning back-reference).
func (n *Node) Scene() *Scene { return n.scene }

// Selected reports whether the node is part of the current selection.
func (n *Node) Selected() bool { return n.selected }

// SetSelected marks the node as selected.
func (n *Node) SetSelected(v bool) { n.selected = v }

// ZValue returns the stacking order value.
func (n *Node) ZValue() int { return n.z }

// SetZValue sets the stacking order value.
func (n *Node) SetZValue(z int) { n.z = z }

// Pos returns the node center in diagram coordinates.
func (n *Node) Pos() geometry.Point { return n.pos }

// SetPos moves the node center. Incident edge paths are not recomputed
// here: callers batch geometry updates through UpdateEdges.
func (n *Node) SetPos(p geometry.Point) { n.pos = p }

// Width returns the node width from the capability table.
func (n *Node) Width() float64 { return kindTable[n.kind].width }

// Height returns the node height from the capability table.
func (n *Node) Height() float64 { return kindTable[n.kind].height }

// BoundingRect returns the rectangle occupied by the node shape.
func (n *Node) BoundingRect() geometry.Rect {
	return geometry.RectAround(n.pos, geometry.Size{W: n.Width(), H: n.Height()})
}

// ContainsPoint checks if the given diagram point hits the node shape.
func (n *Node) ContainsPoint(p geometry.Point) bool {
	return n.BoundingRect().Contains(p)
}

// IsPredicate reports whether the node denotes a named OWL entity whose
// label is its logical name.
func (n *Node) IsPredicate() bool { return n.kind.IsPredicateKind() }

// EditableLabel reports whether the label text is user editable. Special
// nodes keep their reserved label even on predicate kinds.
func (n *Node) EditableLabel() bool {
	return kindTable[n.kind].editableLabel && n.special == SpecialNone
}

// Label returns the label text.
func (n *Node) Label() string { return n.label }

// SpecialKind returns the reserved-entity marker, SpecialNone for user
// named nodes.
func (n *Node) SpecialKind() Special { return n.special }

// RestrictionKind returns the restriction qualifier, meaningful only for
// domain and range restriction nodes.
func (n *Node) RestrictionKind() Restriction { return n.restriction }

// AxiomFlag returns the boolean axiom property with the given name.
func (n *Node) AxiomFlag(a Axiom) bool { return n.flags[a] }

// setAxiomFlag mutates a flag; only commands call this.
func (n *Node) setAxiomFlag(a Axiom, v bool) {
	if n.flags == nil {
		n.flags = make(map[Axiom]bool)
	}
	n.flags[a] = v
}

// Edges returns the incident edges (back-references, not ownership).
func (n *Node) Edges() []*Edge { return n.edges }

// AddEdge registers an incident edge. Duplicate registrations are ignored.
func (n *Node) AddEdge(e *Edge) {
	for _, x := range n.edges {
		if x == e {
			return
		}
	}
	n.edges = append(n.edges, e)
}

// RemoveEdge drops the incident edge registration along with any anchor
// override held for it.
func (n *Node) RemoveEdge(e *Edge) {
	for i, x := range n.edges {
		if x == e {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			break
		}
	}
	delete(n.anchors, e)
}

// Anchor returns the attachment point for the given edge: the per-edge
// override when one has been dragged, the node center otherwise.
func (n *Node) Anchor(e *Edge) geometry.Point {
	if p, ok := n.anchors[e]; ok {
		return p
	}
	return n.pos
}

// SetAnchor overrides the attachment point for the given edge.
func (n *Node) SetAnchor(e *Edge, p geometry.Point) {
	if n.anchors == nil {
		n.anchors = make(map[*Edge]geometry.Point)
	}
	n.anchors[e] = p
}

// Anchors returns a copy of the anchor override mapping.
func (n *Node) Anchors() map[*Edge]geometry.Point {
	out := make(map[*Edge]geometry.Point, len(n.anchors))
	for e, p := range n.anchors {
		out[e] = p
	}
	return out
}

// UpdateEdges recomputes the cached path of every incident edge.
func (n *Node) UpdateEdges() {
	for _, e := range n.edges {
		e.UpdatePath()
	}
}
