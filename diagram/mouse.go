package diagram

import (
	"go.uber.org/zap"

	"graphol/geometry"
)

// moveSnapshot captures the geometry of a drag gesture at press time: every
// selected node's position and anchor overrides, and the breakpoint list of
// every edge whose endpoints are both selected.
type moveSnapshot struct {
	nodes map[*Node]nodeState
	edges map[*Edge][]geometry.Point
}

type nodeState struct {
	pos     geometry.Point
	anchors map[*Edge]geometry.Point
}

// MousePress drives the press transition of the interaction state machine.
// The event position is in diagram coordinates; mod carries the keyboard
// modifiers held at press time. All transitions are defensive no-ops on
// missing preconditions: pointer events cannot be assumed well formed.
func (s *Scene) MousePress(p geometry.Point, mod Modifier) {
	switch s.mode {

	case ModeNodeInsert:
		// Create a new node of the armed kind under the pointer. The mode
		// only drops back to idle when the multi-insert modifier is not
		// held, so chained insertions stay armed.
		node := s.newNodeForInsert(s.modeParam)
		if node == nil {
			return
		}
		node.SetPos(s.Snap(p))
		s.undo.Push(NewAddNodeCommand(s, node))
		s.ClearSelection()
		node.SetSelected(true)
		if s.OnNodeInserted != nil {
			s.OnNodeInserted(node, mod)
		}
		if mod&ModMulti == 0 {
			s.SetMode(ModeIdle, KindUnknown)
		}

	case ModeEdgeInsert:
		// Start a provisional edge from the node under the pointer. The
		// edge is held as pending and stays outside the committed entity
		// collections until release commits it.
		if node := s.NodeOnTopOf(p); node != nil {
			s.pending = s.NewEdge(s.modeParam, node)
			s.pending.UpdatePathTo(p)
		}

	case ModeIdle:
		hit := s.ItemOnTopOf(p, pickOptions{nodes: true, edges: true})
		if hit == nil {
			if mod&ModMulti == 0 {
				s.ClearSelection()
			}
			return
		}
		if mod&ModMulti != 0 {
			hit.SetSelected(!hit.Selected())
		} else if !hit.Selected() {
			s.ClearSelection()
			hit.SetSelected(true)
		}
		// A selected node under the pointer becomes the drag anchor.
		// This is preparatory state only: the mode does not change until
		// the first move event, so a plain click never creates a move.
		if node, ok := hit.(*Node); ok && node.Selected() {
			s.grabber = node
			s.grabberPos = node.Pos()
			s.pressPos = p
			s.moveData = s.snapshotSelection()
		}
	}
}

// MouseMove drives the move transition: pending edge tracking during edge
// insertion, deferred entry into node-move, and live drag application.
func (s *Scene) MouseMove(p geometry.Point, mod Modifier) {
	switch s.mode {

	case ModeEdgeInsert:
		if s.pending == nil {
			return
		}
		s.pending.UpdatePathTo(p)
		s.hoverNode = s.NodeOnTopOf(p, s.pending.source)

	case ModeIdle:
		if s.grabber == nil {
			return
		}
		s.SetMode(ModeNodeMove, s.modeParam)
		s.dragTo(p)

	case ModeNodeMove:
		s.dragTo(p)
	}
}

// dragTo applies the current drag delta directly to every captured entity.
// Direct mutation during the drag is the one sanctioned exception to the
// command discipline: the whole gesture commits as a single command at
// release.
func (s *Scene) dragTo(p geometry.Point) {
	if s.moveData == nil {
		return
	}
	snapped := s.Snap(s.grabberPos.Add(p).Sub(s.pressPos))
	delta := snapped.Sub(s.grabberPos)

	for e, breakpoints := range s.moveData.edges {
		for i, bp := range breakpoints {
			e.SetBreakpoint(i, bp.Add(delta))
		}
	}
	for n, state := range s.moveData.nodes {
		n.SetPos(state.pos.Add(delta))
		for e, anchor := range state.anchors {
			n.SetAnchor(e, anchor.Add(delta))
		}
		n.UpdateEdges()
	}
}

// MouseRelease drives the release transition: edge commit or discard, and
// the single-command commit of a move gesture.
func (s *Scene) MouseRelease(p geometry.Point, mod Modifier) {
	switch s.mode {

	case ModeEdgeInsert:
		if s.pending == nil {
			return
		}
		edge := s.pending
		if target := s.NodeOnTopOf(p, edge.source); target != nil {
			result := ValidationResult{Valid: true}
			if s.checker != nil {
				result = s.checker.Check(edge.source, edge, target)
			}
			if result.Valid {
				edge.target = target
				edge.source.AddEdge(edge)
				edge.target.AddEdge(edge)
				edge.UpdatePath()
				s.undo.Push(NewAddEdgeCommand(s, edge))
				s.updated()
			} else {
				// An invalid edge is discarded exactly like an off-target
				// release; rejection is not a fatal condition.
				s.log.Debug("edge rejected",
					zap.String("id", edge.id),
					zap.String("reason", result.Message))
				if s.OnEdgeRejected != nil {
					s.OnEdgeRejected(edge, result.Message)
				}
			}
		}
		// Notified even when the edge was discarded, so the palette can
		// clear its pressed state.
		if s.OnEdgeInserted != nil {
			s.OnEdgeInserted(edge, mod)
		}
		s.ClearSelection()
		s.pending = nil
		s.hoverNode = nil
		if mod&ModMulti == 0 {
			s.SetMode(ModeIdle, KindUnknown)
		}

	case ModeNodeMove:
		// Node-move can be entered through SetMode without a press ever
		// having captured a snapshot, so a release without one just drops
		// back to idle.
		if s.moveData == nil {
			s.SetMode(ModeIdle, KindUnknown)
			break
		}
		// One command for the whole gesture, no matter how many entities
		// moved. Pushed even for a zero displacement: node-move is only
		// entered after a real move event, so plain clicks never get here.
		before := s.moveData
		after := &moveSnapshot{
			nodes: make(map[*Node]nodeState, len(before.nodes)),
			edges: make(map[*Edge][]geometry.Point, len(before.edges)),
		}
		for n := range before.nodes {
			after.nodes[n] = nodeState{pos: n.Pos(), anchors: n.Anchors()}
		}
		for e := range before.edges {
			after.edges[e] = append([]geometry.Point(nil), e.Breakpoints()...)
		}
		s.undo.Push(NewMoveItemsCommand(s, before, after))
		s.SetMode(ModeIdle, KindUnknown)
	}

	s.grabber = nil
	s.moveData = nil
}

// KeyReleased observes a modifier key release. Releasing the multi-insert
// modifier leaves an armed insertion mode.
func (s *Scene) KeyReleased(mod Modifier) {
	if mod&ModMulti == 0 {
		return
	}
	if s.mode == ModeNodeInsert || s.mode == ModeEdgeInsert {
		s.SetMode(ModeIdle, KindUnknown)
	}
}

// PendingEdge returns the provisional edge of an in-progress insertion
// gesture, nil outside one. The renderer draws it; it is not indexed.
func (s *Scene) PendingEdge() *Edge { return s.pending }

// HoverNode returns the prospective edge target under the pointer during
// edge insertion, for hover feedback.
func (s *Scene) HoverNode() *Node { return s.hoverNode }

// snapshotSelection records the geometry of the current selection for a
// drag gesture.
func (s *Scene) snapshotSelection() *moveSnapshot {
	snap := &moveSnapshot{
		nodes: make(map[*Node]nodeState),
		edges: make(map[*Edge][]geometry.Point),
	}
	for _, n := range s.SelectedNodes() {
		snap.nodes[n] = nodeState{pos: n.Pos(), anchors: n.Anchors()}
	}
	// Edges shared between selected nodes move with them, which means
	// moving their breakpoints.
	for n := range snap.nodes {
		for _, e := range n.Edges() {
			if _, seen := snap.edges[e]; seen {
				continue
			}
			if other := e.Other(n); other != nil && other.Selected() {
				snap.edges[e] = append([]geometry.Point(nil), e.Breakpoints()...)
			}
		}
	}
	return snap
}

// newNodeForInsert builds the node for a palette insertion, applying the
// per-kind construction rules.
func (s *Scene) newNodeForInsert(kind Kind) *Node {
	if !kind.IsNodeKind() {
		return nil
	}
	switch kind {
	case KindDomainRestriction, KindRangeRestriction:
		return s.NewRestrictionNode(kind, RestrictionExists)
	default:
		return s.NewNode(kind)
	}
}
