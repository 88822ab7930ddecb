package diagram

import (
	"fmt"

	"graphol/geometry"
)

// Clearance margins between a composed constructor node and the source
// node's half extent. Cosmetic layout constants; the candidate ordering is
// what the placement search preserves.
const (
	composeClearanceX  = 90.0
	composeClearanceY  = 70.0
	composeClearanceX2 = 120.0
	composeClearanceY2 = 80.0
)

// ComposeAxiom synthesizes the minimal Graphol subgraph expressing the
// given axiom on the source role or attribute node. The returned items
// (nodes first, then edges) are positioned but not inserted: insertion is
// the caller's responsibility through a composite command, keeping the
// placement logic separate from the undoable mutation.
func (s *Scene) ComposeAxiom(source *Node, a Axiom) []Item {
	switch a {
	case AxiomFunctional:
		return s.composeFunctional(source)
	case AxiomInverseFunctional:
		return s.composeInverseFunctional(source)
	case AxiomSymmetric:
		return s.composeSymmetricRole(source)
	case AxiomAsymmetric:
		return s.composeAsymmetricRole(source)
	case AxiomReflexive:
		return s.composeReflexiveRole(source)
	case AxiomIrreflexive:
		return s.composeIrreflexiveRole(source)
	case AxiomTransitive:
		return s.composeTransitiveRole(source)
	case AxiomDomain:
		return s.composePropertyDomain(source)
	case AxiomRange:
		return s.composePropertyRange(source)
	default:
		return nil
	}
}

// snap rounds a scalar to the scene grid; composers always snap regardless
// of the interactive snap setting so composed subgraphs line up.
func (s *Scene) snap(v float64) float64 {
	return geometry.Snap(v, s.GridSize, true)
}

// newCompositionEdge builds a fully wired edge for a composed subgraph.
func (s *Scene) newCompositionEdge(kind Kind, source, target *Node, breakpoints []geometry.Point, functional bool) *Edge {
	e := s.NewEdge(kind, source)
	e.target = target
	e.breakpoints = breakpoints
	e.functional = functional
	return e
}

// placementOffsets returns the ordered candidate offsets probed around the
// source node: right, left, above, below, then the four diagonals, each
// scaled by the source half extent plus a fixed clearance.
func (s *Scene) placementOffsets(source *Node) []geometry.Point {
	dx := s.snap(source.Width()/2 + composeClearanceX)
	dy := s.snap(source.Height()/2 + composeClearanceY)
	return []geometry.Point{
		{X: +dx, Y: 0},
		{X: -dx, Y: 0},
		{X: 0, Y: -dy},
		{X: 0, Y: +dy},
		{X: +dx, Y: -dy},
		{X: -dx, Y: -dy},
		{X: +dx, Y: +dy},
		{X: -dx, Y: +dy},
	}
}

// placeLeastOccupied positions the node at the least crowded candidate
// offset around the source.
func (s *Scene) placeLeastOccupied(source, node *Node) {
	probe := geometry.Size{W: node.Width(), H: node.Height()}
	offset := geometry.LeastOccupiedOffset(source.Pos(), s.placementOffsets(source), probe, s.ItemsInRect)
	node.SetPos(source.Pos().Add(offset))
}

// composeSymmetricRole renders R ⊑ R⁻: one role-inverse node fed by an
// input edge, and an inclusion edge routed as a loop above the source.
func (s *Scene) composeSymmetricRole(source *Node) []Item {
	x1 := s.snap(source.Pos().X + source.Width()/2 + 100)
	y1 := s.snap(source.Pos().Y - source.Height()/2 - 80)

	node1 := s.NewNode(KindRoleInverse)
	node1.SetPos(geometry.Point{X: x1, Y: source.Pos().Y})
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)
	edge2 := s.newCompositionEdge(KindInclusion, source, node1, []geometry.Point{
		{X: source.Pos().X, Y: y1},
		{X: x1, Y: y1},
	}, false)

	return []Item{node1, edge1, edge2}
}

// composeAsymmetricRole renders R ⊑ ¬R⁻: role-inverse and complement nodes
// chained by input edges, plus an inclusion edge on a three-segment detour.
func (s *Scene) composeAsymmetricRole(source *Node) []Item {
	x1 := s.snap(source.Pos().X + source.Width()/2 + 100)
	y1 := s.snap(source.Pos().Y - source.Height()/2 - 40)
	y2 := s.snap(source.Pos().Y - source.Height()/2 - 80)

	node1 := s.NewNode(KindRoleInverse)
	node1.SetPos(geometry.Point{X: x1, Y: source.Pos().Y})
	node2 := s.NewNode(KindComplement)
	node2.SetPos(geometry.Point{X: x1, Y: y1})
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)
	edge2 := s.newCompositionEdge(KindInput, node1, node2, nil, false)
	edge3 := s.newCompositionEdge(KindInclusion, source, node2, []geometry.Point{
		{X: source.Pos().X, Y: y2},
		{X: x1, Y: y2},
	}, false)

	return []Item{node1, node2, edge1, edge2, edge3}
}

// composeReflexiveRole renders ⊤ ⊑ ∃R.Self: a self domain restriction fed
// by the source, included by a top concept.
func (s *Scene) composeReflexiveRole(source *Node) []Item {
	x1 := s.snap(source.Pos().X + source.Width()/2 + 40)
	x2 := s.snap(source.Pos().X + source.Width()/2 + 250)

	node1 := s.NewRestrictionNode(KindDomainRestriction, RestrictionSelf)
	node1.SetPos(geometry.Point{X: x1, Y: source.Pos().Y})
	node2 := s.NewSpecialNode(KindConcept, SpecialTop)
	node2.SetPos(geometry.Point{X: x2, Y: source.Pos().Y})
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)
	edge2 := s.newCompositionEdge(KindInclusion, node2, node1, nil, false)

	return []Item{node1, node2, edge1, edge2}
}

// composeIrreflexiveRole renders ⊤ ⊑ ¬∃R.Self: the self restriction chained
// into a complement, included by a top concept.
func (s *Scene) composeIrreflexiveRole(source *Node) []Item {
	x1 := s.snap(source.Pos().X + source.Width()/2 + 40)
	x2 := s.snap(source.Pos().X + source.Width()/2 + 120)
	x3 := s.snap(source.Pos().X + source.Width()/2 + 250)

	node1 := s.NewRestrictionNode(KindDomainRestriction, RestrictionSelf)
	node1.SetPos(geometry.Point{X: x1, Y: source.Pos().Y})
	node2 := s.NewNode(KindComplement)
	node2.SetPos(geometry.Point{X: x2, Y: source.Pos().Y})
	node3 := s.NewSpecialNode(KindConcept, SpecialTop)
	node3.SetPos(geometry.Point{X: x3, Y: source.Pos().Y})
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)
	edge2 := s.newCompositionEdge(KindInput, node1, node2, nil, false)
	edge3 := s.newCompositionEdge(KindInclusion, node3, node2, nil, false)

	return []Item{node1, node2, node3, edge1, edge2, edge3}
}

// composeTransitiveRole renders R∘R ⊑ R: a role chain fed twice by the
// source, one leg routed above and one below, and an inclusion edge closing
// the loop around the source's left side.
func (s *Scene) composeTransitiveRole(source *Node) []Item {
	x1 := s.snap(source.Pos().X + source.Width()/2 + 90)
	x2 := s.snap(source.Pos().X + source.Width()/2 + 50)
	x3 := s.snap(source.Pos().X - source.Width()/2 - 20)
	y1 := s.snap(source.Pos().Y - source.Height()/2 - 20)
	y2 := s.snap(source.Pos().Y + source.Height()/2 + 20)
	y3 := s.snap(source.Pos().Y - source.Height()/2 + 80)

	node1 := s.NewNode(KindRoleChain)
	node1.SetPos(geometry.Point{X: x1, Y: source.Pos().Y})
	edge1 := s.newCompositionEdge(KindInput, source, node1, []geometry.Point{
		{X: source.Pos().X, Y: y1},
		{X: x2, Y: y1},
	}, false)
	edge2 := s.newCompositionEdge(KindInput, source, node1, []geometry.Point{
		{X: source.Pos().X, Y: y2},
		{X: x2, Y: y2},
	}, false)
	edge3 := s.newCompositionEdge(KindInclusion, node1, source, []geometry.Point{
		{X: x1, Y: y3},
		{X: x3, Y: y3},
		{X: x3, Y: source.Pos().Y},
	}, false)

	return []Item{node1, edge1, edge2, edge3}
}

// composeFunctional attaches an exists domain restriction through a
// functional input edge, placed at the least crowded offset.
func (s *Scene) composeFunctional(source *Node) []Item {
	node1 := s.NewRestrictionNode(KindDomainRestriction, RestrictionExists)
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, true)
	s.placeLeastOccupied(source, node1)
	return []Item{node1, edge1}
}

// composeInverseFunctional attaches an exists range restriction through a
// functional input edge.
func (s *Scene) composeInverseFunctional(source *Node) []Item {
	node1 := s.NewRestrictionNode(KindRangeRestriction, RestrictionExists)
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, true)
	s.placeLeastOccupied(source, node1)
	return []Item{node1, edge1}
}

// composePropertyDomain attaches an exists domain restriction through a
// plain input edge.
func (s *Scene) composePropertyDomain(source *Node) []Item {
	node1 := s.NewRestrictionNode(KindDomainRestriction, RestrictionExists)
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)
	s.placeLeastOccupied(source, node1)
	return []Item{node1, edge1}
}

// composePropertyRange attaches an exists range restriction; on an
// attribute source it additionally appends a value domain linked by an
// inclusion edge, placing the pair by minimizing the summed occupancy of
// both probes.
func (s *Scene) composePropertyRange(source *Node) []Item {
	node1 := s.NewRestrictionNode(KindRangeRestriction, RestrictionExists)
	edge1 := s.newCompositionEdge(KindInput, source, node1, nil, false)

	if source.Kind() != KindAttribute {
		s.placeLeastOccupied(source, node1)
		return []Item{node1, edge1}
	}

	node2 := s.NewNode(KindValueDomain)
	edge2 := s.newCompositionEdge(KindInclusion, node1, node2, nil, false)

	dx := s.snap(node1.Width()/2 + composeClearanceX2)
	dy := s.snap(node1.Height()/2 + composeClearanceY2)
	second := []geometry.Point{
		{X: +dx, Y: 0},
		{X: -dx, Y: 0},
		{X: 0, Y: -dy},
		{X: 0, Y: +dy},
	}
	o1, o2 := geometry.LeastOccupiedPair(
		source.Pos(),
		s.placementOffsets(source),
		second,
		geometry.Size{W: node1.Width(), H: node1.Height()},
		geometry.Size{W: node2.Width(), H: node2.Height()},
		s.ItemsInRect,
	)
	node1.SetPos(source.Pos().Add(o1))
	node2.SetPos(source.Pos().Add(o1).Add(o2))

	return []Item{node1, node2, edge1, edge2}
}

// ComposeAxiomCommand atomically adds a composed subgraph and sets the
// triggering flag.
type ComposeAxiomCommand struct {
	scene  *Scene
	source *Node
	axiom  Axiom
	items  []Item
}

// NewComposeAxiomCommand synthesizes the subgraph for the axiom and wraps
// its insertion as one undo step.
func NewComposeAxiomCommand(scene *Scene, source *Node, a Axiom) *ComposeAxiomCommand {
	return &ComposeAxiomCommand{
		scene:  scene,
		source: source,
		axiom:  a,
		items:  scene.ComposeAxiom(source, a),
	}
}

func (c *ComposeAxiomCommand) Name() string {
	return fmt.Sprintf("compose %s %s", c.axiom, c.source.kind)
}

func (c *ComposeAxiomCommand) Apply() {
	insertItems(c.scene, c.items)
	if c.axiom.HasFlag() {
		c.source.setAxiomFlag(c.axiom, true)
	}
	c.scene.trackComposition(c.source, c.axiom, c.items)
	c.scene.updated()
}

func (c *ComposeAxiomCommand) Undo() {
	removeItems(c.scene, c.items)
	if c.axiom.HasFlag() {
		c.source.setAxiomFlag(c.axiom, false)
	}
	c.scene.untrackComposition(c.source, c.axiom)
	c.scene.updated()
}

// DecomposeAxiomCommand atomically removes a previously composed subgraph
// and clears the triggering flag. It is a distinct command, not an undo of
// the composing one.
type DecomposeAxiomCommand struct {
	scene  *Scene
	source *Node
	axiom  Axiom
	items  []Item
}

// NewDecomposeAxiomCommand captures the subgraph tracked for the axiom on
// the source node. Returns nil when no composition is tracked.
func NewDecomposeAxiomCommand(scene *Scene, source *Node, a Axiom) *DecomposeAxiomCommand {
	items := scene.composed(source, a)
	if items == nil {
		return nil
	}
	return &DecomposeAxiomCommand{scene: scene, source: source, axiom: a, items: items}
}

func (c *DecomposeAxiomCommand) Name() string {
	return fmt.Sprintf("decompose %s %s", c.axiom, c.source.kind)
}

func (c *DecomposeAxiomCommand) Apply() {
	removeItems(c.scene, c.items)
	if c.axiom.HasFlag() {
		c.source.setAxiomFlag(c.axiom, false)
	}
	c.scene.untrackComposition(c.source, c.axiom)
	c.scene.updated()
}

func (c *DecomposeAxiomCommand) Undo() {
	insertItems(c.scene, c.items)
	if c.axiom.HasFlag() {
		c.source.setAxiomFlag(c.axiom, true)
	}
	c.scene.trackComposition(c.source, c.axiom, c.items)
	c.scene.updated()
}

// ToggleAxiomComposition is the UI action entry point: composing when the
// axiom is not present on the node, decomposing when it is. Domain and
// range declarations are compose-only.
func (s *Scene) ToggleAxiomComposition(source *Node, a Axiom) {
	if a.HasFlag() && source.AxiomFlag(a) {
		if cmd := NewDecomposeAxiomCommand(s, source, a); cmd != nil {
			s.undo.Push(cmd)
		}
		return
	}
	s.undo.Push(NewComposeAxiomCommand(s, source, a))
}

// insertItems adds a composed subgraph: nodes first so that edges always
// register against indexed endpoints.
func insertItems(s *Scene, items []Item) {
	for _, item := range items {
		if n, ok := item.(*Node); ok {
			s.AddItem(n)
		}
	}
	for _, item := range items {
		if e, ok := item.(*Edge); ok {
			e.source.AddEdge(e)
			e.target.AddEdge(e)
			s.AddItem(e)
			e.UpdatePath()
		}
	}
}

// removeItems removes a composed subgraph: edges first so that nodes never
// hold a registration for a removed edge.
func removeItems(s *Scene, items []Item) {
	for _, item := range items {
		if e, ok := item.(*Edge); ok {
			s.RemoveItem(e)
			e.source.RemoveEdge(e)
			e.target.RemoveEdge(e)
		}
	}
	for _, item := range items {
		if n, ok := item.(*Node); ok {
			s.RemoveItem(n)
		}
	}
}
