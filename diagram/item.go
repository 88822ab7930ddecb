// Package diagram implements the Graphol diagram scene: the node and edge
// entities, their identity and label indices, the undo/redo command set and
// the pointer-driven interaction state machine.
package diagram

import "graphol/geometry"

// Kind identifies the closed set of node and edge variants of the Graphol
// language. Behavior differences between kinds are data-driven lookups on
// the capability table rather than subclassing.
type Kind int

const (
	KindUnknown Kind = iota

	// Node kinds.
	KindConcept
	KindRole
	KindAttribute
	KindValueDomain
	KindIndividual
	KindValueRestriction
	KindDomainRestriction
	KindRangeRestriction
	KindUnion
	KindIntersection
	KindComplement
	KindEnumeration
	KindRoleChain
	KindRoleInverse
	KindDatatypeRestriction
	KindDisjointUnion
	KindPropertyAssertion

	// Edge kinds.
	KindInclusion
	KindEquivalence
	KindInput
	KindMembership
	KindInstanceOf
)

// kindInfo is the capability table entry for a single kind.
type kindInfo struct {
	name          string
	node          bool
	predicate     bool // carries a logical name as its label
	editableLabel bool
	defaultLabel  string
	width, height float64
}

var kindTable = map[Kind]kindInfo{
	KindConcept:             {name: "concept", node: true, predicate: true, editableLabel: true, defaultLabel: "concept", width: 110, height: 50},
	KindRole:                {name: "role", node: true, predicate: true, editableLabel: true, defaultLabel: "role", width: 70, height: 50},
	KindAttribute:           {name: "attribute", node: true, predicate: true, editableLabel: true, defaultLabel: "attribute", width: 20, height: 20},
	KindValueDomain:         {name: "value-domain", node: true, defaultLabel: "xsd:string", width: 90, height: 40},
	KindIndividual:          {name: "individual", node: true, predicate: true, editableLabel: true, defaultLabel: "individual", width: 60, height: 60},
	KindValueRestriction:    {name: "value-restriction", node: true, defaultLabel: "restriction", width: 90, height: 40},
	KindDomainRestriction:   {name: "domain-restriction", node: true, defaultLabel: "exists", width: 20, height: 20},
	KindRangeRestriction:    {name: "range-restriction", node: true, defaultLabel: "exists", width: 20, height: 20},
	KindUnion:               {name: "union", node: true, defaultLabel: "or", width: 50, height: 30},
	KindIntersection:        {name: "intersection", node: true, defaultLabel: "and", width: 50, height: 30},
	KindComplement:          {name: "complement", node: true, defaultLabel: "not", width: 50, height: 30},
	KindEnumeration:         {name: "enumeration", node: true, defaultLabel: "oneOf", width: 50, height: 30},
	KindRoleChain:           {name: "role-chain", node: true, defaultLabel: "chain", width: 50, height: 30},
	KindRoleInverse:         {name: "role-inverse", node: true, defaultLabel: "inv", width: 50, height: 30},
	KindDatatypeRestriction: {name: "datatype-restriction", node: true, defaultLabel: "data", width: 50, height: 30},
	KindDisjointUnion:       {name: "disjoint-union", node: true, width: 50, height: 30},
	KindPropertyAssertion:   {name: "property-assertion", node: true, width: 52, height: 30},

	KindInclusion:   {name: "inclusion"},
	KindEquivalence: {name: "equivalence"},
	KindInput:       {name: "input"},
	KindMembership:  {name: "membership"},
	KindInstanceOf:  {name: "instance-of"},
}

// String returns the kind name used in the Graphol serialization.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return "unknown"
}

// KindFromName resolves a serialized kind name. Returns KindUnknown for
// names outside the closed set.
func KindFromName(name string) Kind {
	for k, info := range kindTable {
		if info.name == name {
			return k
		}
	}
	return KindUnknown
}

// IsNodeKind reports whether the kind denotes a node variant.
func (k Kind) IsNodeKind() bool {
	return kindTable[k].node
}

// IsEdgeKind reports whether the kind denotes an edge variant.
func (k Kind) IsEdgeKind() bool {
	info, ok := kindTable[k]
	return ok && !info.node
}

// IsPredicateKind reports whether nodes of this kind denote a named OWL
// entity whose label is its logical name.
func (k Kind) IsPredicateKind() bool {
	return kindTable[k].predicate
}

// IsConstructorKind reports whether nodes of this kind build a class or
// property expression from their inputs rather than naming an entity.
func (k Kind) IsConstructorKind() bool {
	info, ok := kindTable[k]
	return ok && info.node && !info.predicate
}

// Item is a diagram entity: either a Node or an Edge.
type Item interface {
	ID() string
	Kind() Kind
	IsNode() bool
	IsEdge() bool
	Selected() bool
	SetSelected(bool)
	ZValue() int
	SetZValue(int)
	BoundingRect() geometry.Rect
	ContainsPoint(geometry.Point) bool
}
