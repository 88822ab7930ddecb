package diagram

import (
	"fmt"

	"graphol/geometry"
)

// AddNodeCommand inserts a node into the diagram.
type AddNodeCommand struct {
	scene *Scene
	node  *Node
}

// NewAddNodeCommand builds the command inserting the given node.
func NewAddNodeCommand(scene *Scene, node *Node) *AddNodeCommand {
	return &AddNodeCommand{scene: scene, node: node}
}

func (c *AddNodeCommand) Name() string {
	return fmt.Sprintf("add %s node", c.node.kind)
}

func (c *AddNodeCommand) Apply() {
	c.scene.AddItem(c.node)
	c.scene.updated()
}

func (c *AddNodeCommand) Undo() {
	c.scene.RemoveItem(c.node)
	c.scene.updated()
}

// AddEdgeCommand inserts a committed edge into the diagram, registering it
// on both endpoint nodes.
type AddEdgeCommand struct {
	scene *Scene
	edge  *Edge
}

// NewAddEdgeCommand builds the command inserting the given edge. The edge
// must have both endpoints set.
func NewAddEdgeCommand(scene *Scene, edge *Edge) *AddEdgeCommand {
	return &AddEdgeCommand{scene: scene, edge: edge}
}

func (c *AddEdgeCommand) Name() string {
	return fmt.Sprintf("add %s edge", c.edge.kind)
}

func (c *AddEdgeCommand) Apply() {
	c.edge.source.AddEdge(c.edge)
	c.edge.target.AddEdge(c.edge)
	c.scene.AddItem(c.edge)
	c.edge.UpdatePath()
	c.scene.updated()
}

func (c *AddEdgeCommand) Undo() {
	c.scene.RemoveItem(c.edge)
	c.edge.source.RemoveEdge(c.edge)
	c.edge.target.RemoveEdge(c.edge)
	c.scene.updated()
}

// RemoveItemsCommand removes a set of entities as one atomic unit. Removing
// a node always removes its incident edges with it, so the committed
// collections never hold an edge with a dangling endpoint.
type RemoveItemsCommand struct {
	scene *Scene
	nodes []*Node
	edges []*Edge
}

// NewRemoveItemsCommand builds the removal command for the given items,
// expanding node selections with their incident edges.
func NewRemoveItemsCommand(scene *Scene, items []Item) *RemoveItemsCommand {
	c := &RemoveItemsCommand{scene: scene}
	seen := make(map[Item]bool)
	addEdge := func(e *Edge) {
		if !seen[e] {
			seen[e] = true
			c.edges = append(c.edges, e)
		}
	}
	for _, item := range items {
		switch it := item.(type) {
		case *Node:
			if !seen[it] {
				seen[it] = true
				c.nodes = append(c.nodes, it)
				for _, e := range it.Edges() {
					addEdge(e)
				}
			}
		case *Edge:
			addEdge(it)
		}
	}
	return c
}

func (c *RemoveItemsCommand) Name() string {
	return fmt.Sprintf("remove %d items", len(c.nodes)+len(c.edges))
}

func (c *RemoveItemsCommand) Apply() {
	for _, e := range c.edges {
		c.scene.RemoveItem(e)
		e.source.RemoveEdge(e)
		e.target.RemoveEdge(e)
	}
	for _, n := range c.nodes {
		c.scene.RemoveItem(n)
	}
	c.scene.updated()
}

func (c *RemoveItemsCommand) Undo() {
	for _, n := range c.nodes {
		c.scene.AddItem(n)
	}
	for _, e := range c.edges {
		e.source.AddEdge(e)
		e.target.AddEdge(e)
		c.scene.AddItem(e)
		e.UpdatePath()
	}
	c.scene.updated()
}

// MoveItemsCommand commits a whole drag gesture: every moved node's
// position and anchors plus every co-moved edge's breakpoints, applied and
// reverted as one atomic unit.
type MoveItemsCommand struct {
	scene  *Scene
	before *moveSnapshot
	after  *moveSnapshot
}

// NewMoveItemsCommand builds the command from the press-time and
// release-time geometry snapshots.
func NewMoveItemsCommand(scene *Scene, before, after *moveSnapshot) *MoveItemsCommand {
	return &MoveItemsCommand{scene: scene, before: before, after: after}
}

func (c *MoveItemsCommand) Name() string {
	return fmt.Sprintf("move %d items", len(c.after.nodes)+len(c.after.edges))
}

func (c *MoveItemsCommand) Apply() { c.restore(c.after) }
func (c *MoveItemsCommand) Undo()  { c.restore(c.before) }

func (c *MoveItemsCommand) restore(snap *moveSnapshot) {
	for e, breakpoints := range snap.edges {
		e.SetBreakpoints(append([]geometry.Point(nil), breakpoints...))
	}
	for n, state := range snap.nodes {
		n.SetPos(state.pos)
		for e, anchor := range state.anchors {
			n.SetAnchor(e, anchor)
		}
		n.UpdateEdges()
	}
	c.scene.updated()
}

// SetNodeFlagCommand toggles one boolean axiom property on one node.
type SetNodeFlagCommand struct {
	node  *Node
	axiom Axiom
	value bool
	prior bool
}

// NewSetNodeFlagCommand builds the flag toggle command.
func NewSetNodeFlagCommand(node *Node, axiom Axiom, value bool) *SetNodeFlagCommand {
	return &SetNodeFlagCommand{
		node:  node,
		axiom: axiom,
		value: value,
		prior: node.AxiomFlag(axiom),
	}
}

func (c *SetNodeFlagCommand) Name() string {
	return fmt.Sprintf("set %s %s", c.node.kind, c.axiom)
}

func (c *SetNodeFlagCommand) Apply() { c.node.setAxiomFlag(c.axiom, c.value) }
func (c *SetNodeFlagCommand) Undo()  { c.node.setAxiomFlag(c.axiom, c.prior) }

// EditLabelCommand renames a single predicate node's label, moving it
// between label index buckets as part of apply and undo.
type EditLabelCommand struct {
	scene *Scene
	node  *Node
	prior string
	text  string
}

// NewEditLabelCommand builds the single-node rename command.
func NewEditLabelCommand(scene *Scene, node *Node, text string) *EditLabelCommand {
	return &EditLabelCommand{scene: scene, node: node, prior: node.Label(), text: text}
}

func (c *EditLabelCommand) Name() string { return "edit label" }

func (c *EditLabelCommand) Apply() {
	c.scene.relabel(c.node, c.text)
	c.scene.updated()
}

func (c *EditLabelCommand) Undo() {
	c.scene.relabel(c.node, c.prior)
	c.scene.updated()
}

// RefactorLabelCommand renames a predicate everywhere: every node drawn
// with the old label is rewritten as one atomic command, so the rename
// undoes as a single step.
type RefactorLabelCommand struct {
	scene *Scene
	nodes []*Node
	prior string
	text  string
}

// NewRefactorLabelCommand builds the rename-everywhere command for the
// nodes currently indexed under the old label.
func NewRefactorLabelCommand(scene *Scene, prior, text string) *RefactorLabelCommand {
	nodes := append([]*Node(nil), scene.NodesByLabel(prior)...)
	return &RefactorLabelCommand{scene: scene, nodes: nodes, prior: prior, text: text}
}

func (c *RefactorLabelCommand) Name() string {
	return fmt.Sprintf("refactor label %q to %q", c.prior, c.text)
}

func (c *RefactorLabelCommand) Apply() {
	for _, n := range c.nodes {
		c.scene.relabel(n, c.text)
	}
	c.scene.updated()
}

func (c *RefactorLabelCommand) Undo() {
	for _, n := range c.nodes {
		c.scene.relabel(n, c.prior)
	}
	c.scene.updated()
}

// SwapEdgesCommand reverses the direction of a set of edges as one step.
type SwapEdgesCommand struct {
	edges map[*Edge][2]*Node // original source, target
}

// NewSwapEdgesCommand builds the swap command for the given edges.
func NewSwapEdgesCommand(edges []*Edge) *SwapEdgesCommand {
	c := &SwapEdgesCommand{edges: make(map[*Edge][2]*Node, len(edges))}
	for _, e := range edges {
		c.edges[e] = [2]*Node{e.source, e.target}
	}
	return c
}

func (c *SwapEdgesCommand) Name() string {
	return fmt.Sprintf("swap %d edges", len(c.edges))
}

func (c *SwapEdgesCommand) Apply() {
	for e, ends := range c.edges {
		e.source, e.target = ends[1], ends[0]
		e.UpdatePath()
	}
}

func (c *SwapEdgesCommand) Undo() {
	for e, ends := range c.edges {
		e.source, e.target = ends[0], ends[1]
		e.UpdatePath()
	}
}

// edgeFlag selects which edge marker a toggle command drives.
type edgeFlag int

const (
	edgeFlagComplete edgeFlag = iota
	edgeFlagFunctional
)

// ToggleEdgeFlagCommand toggles the complete or functional marker over a
// selection of edges: when any edge in the selection lacks the marker the
// whole selection turns it on, otherwise the whole selection turns it off.
type ToggleEdgeFlagCommand struct {
	flag   edgeFlag
	enable bool
	prior  map[*Edge]bool
}

// NewToggleEdgeCompleteCommand builds the complete-marker toggle for the
// given inclusion edges.
func NewToggleEdgeCompleteCommand(edges []*Edge) *ToggleEdgeFlagCommand {
	return newToggleEdgeFlag(edgeFlagComplete, edges)
}

// NewToggleEdgeFunctionalCommand builds the functional-marker toggle for
// the given input edges.
func NewToggleEdgeFunctionalCommand(edges []*Edge) *ToggleEdgeFlagCommand {
	return newToggleEdgeFlag(edgeFlagFunctional, edges)
}

func newToggleEdgeFlag(flag edgeFlag, edges []*Edge) *ToggleEdgeFlagCommand {
	c := &ToggleEdgeFlagCommand{flag: flag, prior: make(map[*Edge]bool, len(edges))}
	for _, e := range edges {
		v := c.get(e)
		c.prior[e] = v
		if !v {
			c.enable = true
		}
	}
	return c
}

func (c *ToggleEdgeFlagCommand) get(e *Edge) bool {
	if c.flag == edgeFlagComplete {
		return e.complete
	}
	return e.functional
}

func (c *ToggleEdgeFlagCommand) set(e *Edge, v bool) {
	if c.flag == edgeFlagComplete {
		e.complete = v
	} else {
		e.functional = v
	}
}

func (c *ToggleEdgeFlagCommand) Name() string {
	if c.flag == edgeFlagComplete {
		return "toggle edge completeness"
	}
	return "toggle edge functionality"
}

func (c *ToggleEdgeFlagCommand) Apply() {
	for e := range c.prior {
		c.set(e, c.enable)
	}
}

func (c *ToggleEdgeFlagCommand) Undo() {
	for e, v := range c.prior {
		c.set(e, v)
	}
}

// ZOrderCommand restacks a set of items above or below everything else.
type ZOrderCommand struct {
	name  string
	prior map[Item]int
	next  map[Item]int
}

// NewBringToFrontCommand restacks the given items above every other item
// in the scene.
func NewBringToFrontCommand(scene *Scene, items []Item) *ZOrderCommand {
	z := 0
	for _, it := range scene.Items() {
		if it.ZValue() > z {
			z = it.ZValue()
		}
	}
	return newZOrder("bring to front", items, func(i int) int { return z + 1 + i })
}

// NewSendToBackCommand restacks the given items below every other item in
// the scene.
func NewSendToBackCommand(scene *Scene, items []Item) *ZOrderCommand {
	z := 0
	for _, it := range scene.Items() {
		if it.ZValue() < z {
			z = it.ZValue()
		}
	}
	return newZOrder("send to back", items, func(i int) int { return z - 1 - i })
}

func newZOrder(name string, items []Item, level func(int) int) *ZOrderCommand {
	c := &ZOrderCommand{
		name:  name,
		prior: make(map[Item]int, len(items)),
		next:  make(map[Item]int, len(items)),
	}
	for i, it := range items {
		c.prior[it] = it.ZValue()
		c.next[it] = level(i)
	}
	return c
}

func (c *ZOrderCommand) Name() string { return c.name }

func (c *ZOrderCommand) Apply() {
	for it, z := range c.next {
		it.SetZValue(z)
	}
}

func (c *ZOrderCommand) Undo() {
	for it, z := range c.prior {
		it.SetZValue(z)
	}
}
