package diagram

import "graphol/geometry"

// edgeSelectionWidth is the width of the hit-test area built around every
// path segment.
const edgeSelectionWidth = 10.0

// Edge is a typed connection between two nodes. While an edge is being
// drawn interactively its target is absent and the edge lives outside the
// committed entity collections; a fully indexed edge always has both
// endpoints.
type Edge struct {
	id          string
	kind        Kind
	scene       *Scene
	source      *Node
	target      *Node
	breakpoints []geometry.Point
	complete    bool // meaningful for inclusion edges only
	functional  bool // meaningful for input edges only
	selected    bool
	z           int
	path        []geometry.Point // cached: source anchor, breakpoints, target anchor
}

// ID returns the edge id.
func (e *Edge) ID() string { return e.id }

// Kind returns the edge kind.
func (e *Edge) Kind() Kind { return e.kind }

// IsNode reports false for edges.
func (e *Edge) IsNode() bool { return false }

// IsEdge reports true for edges.
func (e *Edge) IsEdge() bool { return true }

// Scene returns the owning diagram scene (non-owning back-reference).
func (e *Edge) Scene() *Scene { return e.scene }

// Selected reports whether the edge is part of the current selection.
func (e *Edge) Selected() bool { return e.selected }

// SetSelected marks the edge as selected.
func (e *Edge) SetSelected(v bool) { e.selected = v }

// ZValue returns the stacking order value.
func (e *Edge) ZValue() int { return e.z }

// SetZValue sets the stacking order value.
func (e *Edge) SetZValue(z int) { e.z = z }

// Source returns the source node.
func (e *Edge) Source() *Node { return e.source }

// Target returns the target node, nil while the edge is provisional.
func (e *Edge) Target() *Node { return e.target }

// Other returns the endpoint opposite to the given node, nil when the node
// is not an endpoint.
func (e *Edge) Other(n *Node) *Node {
	switch n {
	case e.source:
		return e.target
	case e.target:
		return e.source
	}
	return nil
}

// Complete returns the complete-axiom marker of an inclusion edge.
func (e *Edge) Complete() bool { return e.complete }

// Functional returns the functional marker of an input edge.
func (e *Edge) Functional() bool { return e.functional }

// Breakpoints returns the ordered intermediate routing points between the
// source and target anchors.
func (e *Edge) Breakpoints() []geometry.Point { return e.breakpoints }

// SetBreakpoint overwrites the breakpoint at the given position.
func (e *Edge) SetBreakpoint(i int, p geometry.Point) {
	if i >= 0 && i < len(e.breakpoints) {
		e.breakpoints[i] = p
	}
}

// SetBreakpoints replaces the whole breakpoint list.
func (e *Edge) SetBreakpoints(points []geometry.Point) {
	e.breakpoints = points
}

// Path returns the cached rendered path: source anchor, breakpoints and
// target anchor in order.
func (e *Edge) Path() []geometry.Point { return e.path }

// UpdatePath recomputes the cached path from the current endpoint anchors
// and breakpoints. No-op while the target is absent; use UpdatePathTo
// during interactive insertion.
func (e *Edge) UpdatePath() {
	if e.source == nil || e.target == nil {
		return
	}
	e.rebuildPath(e.target.Anchor(e))
}

// UpdatePathTo recomputes the cached path toward an arbitrary point, used
// while the edge follows the pointer during insertion.
func (e *Edge) UpdatePathTo(p geometry.Point) {
	e.rebuildPath(p)
}

func (e *Edge) rebuildPath(end geometry.Point) {
	path := make([]geometry.Point, 0, len(e.breakpoints)+2)
	path = append(path, e.source.Anchor(e))
	path = append(path, e.breakpoints...)
	path = append(path, end)
	e.path = path
}

// BoundingRect returns the bounding rectangle of the edge path, grown by
// the selection width.
func (e *Edge) BoundingRect() geometry.Rect {
	return geometry.BoundsOf(e.path).Adjusted(edgeSelectionWidth / 2)
}

// ContainsPoint checks if the given diagram point hits any path segment's
// selection area.
func (e *Edge) ContainsPoint(p geometry.Point) bool {
	for i := 0; i+1 < len(e.path); i++ {
		p1, p2 := e.path[i], e.path[i+1]
		area := geometry.SegmentArea(p1, p2, geometry.Angle(p1, p2), edgeSelectionWidth)
		if area.Contains(p) {
			return true
		}
	}
	return false
}
