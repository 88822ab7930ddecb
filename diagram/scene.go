package diagram

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphol/geometry"
	"graphol/history"
)

// Mode is the interaction state of the scene's pointer state machine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeNodeInsert
	ModeEdgeInsert
	ModeNodeMove
)

// String returns the mode name for display.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeNodeInsert:
		return "node-insert"
	case ModeEdgeInsert:
		return "edge-insert"
	case ModeNodeMove:
		return "node-move"
	default:
		return "unknown"
	}
}

// Modifier carries the keyboard modifiers held during a pointer event.
type Modifier uint8

const (
	ModNone Modifier = 0
	// ModMulti keeps insertion modes armed for chained insertions and
	// accumulates selection on click.
	ModMulti Modifier = 1 << iota
)

// ValidationResult is the outcome of a profile check over a candidate edge.
type ValidationResult struct {
	Valid   bool
	Message string
}

// Checker validates a candidate edge between two nodes against the active
// OWL 2 profile. The scene does not interpret why a combination is invalid,
// only whether to accept it and what message to surface.
type Checker interface {
	Check(source *Node, edge *Edge, target *Node) ValidationResult
}

// DefaultGridSize is the grid step used when none is configured.
const DefaultGridSize = 20.0

// Scene is the diagram aggregate root. It owns the entity collections and
// their indices, the undo/redo command stack and the interaction state
// machine. Entities enter the scene exclusively through AddItem and leave
// exclusively through RemoveItem; every command goes through those entry
// points so the indices never drift.
//
// The scene is single threaded: all mutation happens on the event loop
// that delivers pointer and action events.
type Scene struct {
	GridSize   float64
	SnapToGrid bool

	// Notifications consumed by the UI shell; all optional.
	OnModeChanged  func(Mode)
	OnNodeInserted func(*Node, Modifier)
	OnEdgeInserted func(*Edge, Modifier)
	OnEdgeRejected func(*Edge, string)
	OnUpdated      func()

	guid    uuid.UUID
	ids     *UniqueID
	undo    *history.Stack
	checker Checker
	log     *zap.Logger

	nodesByID    map[string]*Node
	edgesByID    map[string]*Edge
	nodesByLabel map[string][]*Node
	order        []Item // insertion order, breaks z ties deterministically
	topZ         int

	mode      Mode
	modeParam Kind

	// Interactive gesture state, meaningful only between a press and the
	// matching release.
	pending    *Edge // provisional edge during edge insertion
	hoverNode  *Node // prospective target under the pointer
	grabber    *Node
	grabberPos geometry.Point
	pressPos   geometry.Point
	moveData   *moveSnapshot

	// Subgraphs produced by axiom composition, tracked so that toggling
	// the axiom off removes exactly the items it added.
	compositions map[*Node]map[Axiom][]Item
}

// NewScene creates an empty diagram scene.
func NewScene(gridSize float64, undoLimit int, log *zap.Logger) *Scene {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		GridSize:     gridSize,
		guid:         uuid.New(),
		ids:          NewUniqueID(),
		undo:         history.NewStack(undoLimit),
		log:          log,
		nodesByID:    make(map[string]*Node),
		edgesByID:    make(map[string]*Edge),
		nodesByLabel: make(map[string][]*Node),
		compositions: make(map[*Node]map[Axiom][]Item),
	}
}

// GUID returns the stable document identity of this diagram.
func (s *Scene) GUID() uuid.UUID { return s.guid }

// UndoStack returns the scene's command stack.
func (s *Scene) UndoStack() *history.Stack { return s.undo }

// SetChecker installs the profile validator consulted on edge commit.
// A nil checker accepts every edge.
func (s *Scene) SetChecker(c Checker) { s.checker = c }

// Observe feeds an externally supplied id to the identity service so that
// subsequently generated ids never collide. Used by the persistence loader.
func (s *Scene) Observe(id string) { s.ids.Observe(id) }

// NewNode builds a node of the given kind with a fresh id. The node is not
// part of the diagram until passed to AddItem.
func (s *Scene) NewNode(kind Kind) *Node {
	return &Node{
		id:    s.ids.Next(NodeIDPrefix),
		kind:  kind,
		scene: s,
		label: kindTable[kind].defaultLabel,
	}
}

// NewNodeWithID builds a node carrying a deserialized id. The id is fed to
// the identity service to keep the counter consistent.
func (s *Scene) NewNodeWithID(id string, kind Kind) *Node {
	s.ids.Observe(id)
	return &Node{
		id:    id,
		kind:  kind,
		scene: s,
		label: kindTable[kind].defaultLabel,
	}
}

// NewRestrictionNode builds a domain or range restriction node with the
// given qualifier; the label is composed from the restriction, not edited.
func (s *Scene) NewRestrictionNode(kind Kind, r Restriction) *Node {
	n := s.NewNode(kind)
	n.restriction = r
	n.label = r.String()
	return n
}

// NewSpecialNode builds a predicate node denoting a reserved OWL entity
// (TOP or BOTTOM). Its label is fixed and excluded from the label index.
func (s *Scene) NewSpecialNode(kind Kind, sp Special) *Node {
	n := s.NewNode(kind)
	n.special = sp
	n.label = string(sp)
	return n
}

// NewEdge builds an edge of the given kind from the source node with a
// fresh id and no target: a provisional object until the insertion gesture
// commits it.
func (s *Scene) NewEdge(kind Kind, source *Node) *Edge {
	return &Edge{
		id:     s.ids.Next(EdgeIDPrefix),
		kind:   kind,
		scene:  s,
		source: source,
	}
}

// NewEdgeWithID builds an edge carrying a deserialized id with both
// endpoints known.
func (s *Scene) NewEdgeWithID(id string, kind Kind, source, target *Node) *Edge {
	s.ids.Observe(id)
	return &Edge{
		id:     id,
		kind:   kind,
		scene:  s,
		source: source,
		target: target,
	}
}

// AddItem inserts an entity into the diagram and indexes it: by id always,
// and by label text for nodes with an editable label. Adding an id twice
// overwrites the index entry (defensive; the loader is trusted to supply
// unique ids).
func (s *Scene) AddItem(item Item) {
	switch it := item.(type) {
	case *Node:
		s.nodesByID[it.id] = it
		if it.EditableLabel() {
			s.nodesByLabel[it.label] = appendUnique(s.nodesByLabel[it.label], it)
		}
	case *Edge:
		s.edgesByID[it.id] = it
	}
	s.order = append(s.order, item)
	s.topZ++
	item.SetZValue(s.topZ)
	s.log.Debug("item added", zap.String("id", item.ID()), zap.Stringer("kind", item.Kind()))
}

// RemoveItem erases an entity from the diagram and de-indexes it. Removing
// an item that is not in the diagram is a no-op.
func (s *Scene) RemoveItem(item Item) {
	switch it := item.(type) {
	case *Node:
		delete(s.nodesByID, it.id)
		if it.EditableLabel() {
			s.dropFromLabelIndex(it.label, it)
		}
	case *Edge:
		delete(s.edgesByID, it.id)
	}
	for i, x := range s.order {
		if x == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debug("item removed", zap.String("id", item.ID()), zap.Stringer("kind", item.Kind()))
}

// relabel renames a node and moves it between label buckets as one atomic
// step: the node is never left indexed under a stale label and an empty
// bucket never persists. Only label commands call this.
func (s *Scene) relabel(n *Node, text string) {
	if n.label == text {
		return
	}
	indexed := n.EditableLabel() && s.nodesByID[n.id] == n
	if indexed {
		s.dropFromLabelIndex(n.label, n)
	}
	n.label = text
	if indexed {
		s.nodesByLabel[text] = appendUnique(s.nodesByLabel[text], n)
	}
}

func (s *Scene) dropFromLabelIndex(label string, n *Node) {
	bucket := s.nodesByLabel[label]
	for i, x := range bucket {
		if x == n {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.nodesByLabel, label)
	} else {
		s.nodesByLabel[label] = bucket
	}
}

// appendUnique appends a node to a label bucket keeping it duplicate free.
func appendUnique(bucket []*Node, n *Node) []*Node {
	for _, x := range bucket {
		if x == n {
			return bucket
		}
	}
	return append(bucket, n)
}

// Node returns the node with the given id, nil if absent.
func (s *Scene) Node(id string) *Node { return s.nodesByID[id] }

// Edge returns the edge with the given id, nil if absent.
func (s *Scene) Edge(id string) *Edge { return s.edgesByID[id] }

// Nodes returns the live nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodesByID))
	for _, item := range s.order {
		if n, ok := item.(*Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the live edges in insertion order.
func (s *Scene) Edges() []*Edge {
	out := make([]*Edge, 0, len(s.edgesByID))
	for _, item := range s.order {
		if e, ok := item.(*Edge); ok {
			out = append(out, e)
		}
	}
	return out
}

// Items returns all live entities in insertion order.
func (s *Scene) Items() []Item {
	out := make([]Item, len(s.order))
	copy(out, s.order)
	return out
}

// NodesByLabel returns the nodes sharing the given label text, in index
// order. Multiple nodes with one label denote the same logical predicate
// drawn multiple times.
func (s *Scene) NodesByLabel(label string) []*Node {
	return s.nodesByLabel[label]
}

// LabelCount returns the number of distinct label buckets.
func (s *Scene) LabelCount() int { return len(s.nodesByLabel) }

// pickOptions filters ItemOnTopOf searches.
type pickOptions struct {
	nodes bool
	edges bool
	skip  map[Item]bool
}

// ItemOnTopOf returns the entity with the highest stacking order under the
// given point, nil when the point hits nothing. Later insertions win ties.
func (s *Scene) ItemOnTopOf(p geometry.Point, opts pickOptions) Item {
	var best Item
	for _, item := range s.order {
		if opts.skip[item] {
			continue
		}
		if item.IsNode() && !opts.nodes || item.IsEdge() && !opts.edges {
			continue
		}
		if !item.ContainsPoint(p) {
			continue
		}
		if best == nil || item.ZValue() >= best.ZValue() {
			best = item
		}
	}
	return best
}

// NodeOnTopOf returns the top-most node under the point, skipping the given
// items.
func (s *Scene) NodeOnTopOf(p geometry.Point, skip ...Item) *Node {
	opts := pickOptions{nodes: true}
	if len(skip) > 0 {
		opts.skip = make(map[Item]bool, len(skip))
		for _, it := range skip {
			opts.skip[it] = true
		}
	}
	if n, ok := s.ItemOnTopOf(p, opts).(*Node); ok {
		return n
	}
	return nil
}

// ItemsInRect counts the live entities whose bounds intersect the given
// rectangle. This is the occupancy query behind the composer placement
// search.
func (s *Scene) ItemsInRect(r geometry.Rect) int {
	count := 0
	for _, item := range s.order {
		if item.BoundingRect().Intersects(r) {
			count++
		}
	}
	return count
}

// SelectedNodes returns the nodes in the current selection.
func (s *Scene) SelectedNodes() []*Node {
	var out []*Node
	for _, n := range s.Nodes() {
		if n.selected {
			out = append(out, n)
		}
	}
	return out
}

// SelectedEdges returns the edges in the current selection.
func (s *Scene) SelectedEdges() []*Edge {
	var out []*Edge
	for _, e := range s.Edges() {
		if e.selected {
			out = append(out, e)
		}
	}
	return out
}

// SelectedItems returns every selected entity.
func (s *Scene) SelectedItems() []Item {
	var out []Item
	for _, item := range s.order {
		if item.Selected() {
			out = append(out, item)
		}
	}
	return out
}

// ClearSelection deselects every entity.
func (s *Scene) ClearSelection() {
	for _, item := range s.order {
		item.SetSelected(false)
	}
}

// SelectAll selects every entity.
func (s *Scene) SelectAll() {
	for _, item := range s.order {
		item.SetSelected(true)
	}
}

// Mode returns the current interaction mode.
func (s *Scene) Mode() Mode { return s.mode }

// ModeParam returns the node or edge kind armed for insertion.
func (s *Scene) ModeParam() Kind { return s.modeParam }

// SetMode switches the interaction mode, notifying the UI shell so palette
// button state stays in sync.
func (s *Scene) SetMode(mode Mode, param Kind) {
	if s.mode == mode && s.modeParam == param {
		return
	}
	s.mode = mode
	s.modeParam = param
	s.log.Debug("mode changed", zap.Stringer("mode", mode))
	if s.OnModeChanged != nil {
		s.OnModeChanged(mode)
	}
}

// Snap rounds a point to the grid when snapping is enabled.
func (s *Scene) Snap(p geometry.Point) geometry.Point {
	return geometry.SnapPoint(p, s.GridSize, s.SnapToGrid)
}

// VisibleRect returns the bounding rectangle of all live entities grown by
// the given margin, and false when the diagram is empty.
func (s *Scene) VisibleRect(margin float64) (geometry.Rect, bool) {
	if len(s.order) == 0 {
		return geometry.Rect{}, false
	}
	r := s.order[0].BoundingRect()
	for _, item := range s.order[1:] {
		r = r.Union(item.BoundingRect())
	}
	return r.Adjusted(margin), true
}

// Clear removes every entity and resets the command stack. The identity
// counters are kept so ids are never reused within a scene lifetime.
func (s *Scene) Clear() {
	s.nodesByID = make(map[string]*Node)
	s.edgesByID = make(map[string]*Edge)
	s.nodesByLabel = make(map[string][]*Node)
	s.order = nil
	s.compositions = make(map[*Node]map[Axiom][]Item)
	s.undo.Clear()
}

func (s *Scene) updated() {
	if s.OnUpdated != nil {
		s.OnUpdated()
	}
}

// composed returns the subgraph previously composed on the node for the
// given axiom.
func (s *Scene) composed(n *Node, a Axiom) []Item {
	return s.compositions[n][a]
}

func (s *Scene) trackComposition(n *Node, a Axiom, items []Item) {
	if s.compositions[n] == nil {
		s.compositions[n] = make(map[Axiom][]Item)
	}
	s.compositions[n][a] = items
}

func (s *Scene) untrackComposition(n *Node, a Axiom) {
	delete(s.compositions[n], a)
	if len(s.compositions[n]) == 0 {
		delete(s.compositions, n)
	}
}
