package diagram

import (
	"fmt"

	"graphol/geometry"
)

// Paste offset added to item positions on each paste, growing with every
// repeated paste of the same clipboard content.
const (
	PasteOffsetX = 20.0
	PasteOffsetY = 10.0
)

// Clipboard holds a value snapshot of a copied subgraph: node and edge data
// detached from the live entities, so later mutations or removals of the
// originals never affect what paste produces.
type Clipboard struct {
	nodes  []nodeSnapshot
	edges  []edgeSnapshot
	pastes int
}

type nodeSnapshot struct {
	kind        Kind
	pos         geometry.Point
	label       string
	special     Special
	restriction Restriction
}

type edgeSnapshot struct {
	kind           Kind
	source, target int // indices into the node snapshot list
	breakpoints    []geometry.Point
	complete       bool
	functional     bool
}

// Empty reports whether the clipboard holds nothing to paste.
func (cb *Clipboard) Empty() bool { return len(cb.nodes) == 0 }

// Update replaces the clipboard content with the scene's current
// selection: every selected node, and every selected edge whose endpoints
// are both selected.
func (cb *Clipboard) Update(s *Scene) {
	cb.nodes = nil
	cb.edges = nil
	cb.pastes = 0

	index := make(map[*Node]int)
	for _, n := range s.SelectedNodes() {
		index[n] = len(cb.nodes)
		cb.nodes = append(cb.nodes, nodeSnapshot{
			kind:        n.kind,
			pos:         n.pos,
			label:       n.label,
			special:     n.special,
			restriction: n.restriction,
		})
	}
	for _, e := range s.SelectedEdges() {
		si, sok := index[e.source]
		ti, tok := index[e.target]
		if !sok || !tok {
			continue
		}
		cb.edges = append(cb.edges, edgeSnapshot{
			kind:        e.kind,
			source:      si,
			target:      ti,
			breakpoints: append([]geometry.Point(nil), e.breakpoints...),
			complete:    e.complete,
			functional:  e.functional,
		})
	}
}

// Paste materializes the clipboard content into the scene with fresh ids,
// shifted by an offset that grows with each repeated paste, as one undo
// step. The pasted items become the new selection.
func (cb *Clipboard) Paste(s *Scene) {
	if cb.Empty() {
		return
	}
	cb.pastes++
	offset := geometry.Point{
		X: PasteOffsetX * float64(cb.pastes),
		Y: PasteOffsetY * float64(cb.pastes),
	}

	nodes := make([]*Node, len(cb.nodes))
	items := make([]Item, 0, len(cb.nodes)+len(cb.edges))
	for i, snap := range cb.nodes {
		n := s.NewNode(snap.kind)
		n.label = snap.label
		n.special = snap.special
		n.restriction = snap.restriction
		n.SetPos(snap.pos.Add(offset))
		nodes[i] = n
		items = append(items, n)
	}
	for _, snap := range cb.edges {
		breakpoints := make([]geometry.Point, len(snap.breakpoints))
		for i, bp := range snap.breakpoints {
			breakpoints[i] = bp.Add(offset)
		}
		e := s.newCompositionEdge(snap.kind, nodes[snap.source], nodes[snap.target], breakpoints, snap.functional)
		e.complete = snap.complete
		items = append(items, e)
	}

	s.UndoStack().Push(NewPasteCommand(s, items))
	s.ClearSelection()
	for _, item := range items {
		item.SetSelected(true)
	}
}

// Cut copies the selection and removes it as one undo step.
func (cb *Clipboard) Cut(s *Scene) {
	cb.Update(s)
	if items := s.SelectedItems(); len(items) > 0 {
		s.UndoStack().Push(NewRemoveItemsCommand(s, items))
	}
}

// PasteCommand inserts a cloned subgraph as one atomic unit.
type PasteCommand struct {
	scene *Scene
	items []Item
}

// NewPasteCommand builds the insertion command for the cloned items.
func NewPasteCommand(scene *Scene, items []Item) *PasteCommand {
	return &PasteCommand{scene: scene, items: items}
}

func (c *PasteCommand) Name() string {
	return fmt.Sprintf("paste %d items", len(c.items))
}

func (c *PasteCommand) Apply() {
	insertItems(c.scene, c.items)
	c.scene.updated()
}

func (c *PasteCommand) Undo() {
	removeItems(c.scene, c.items)
	c.scene.updated()
}
