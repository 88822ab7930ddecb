// Package profile hosts the validation side of the editor: the checkers
// consulted when an edge is committed, and the cooperative sweep that
// validates a whole diagram one item at a time.
package profile

import "graphol/diagram"

// AllowAll accepts every edge. It is the checker installed when no profile
// is configured.
type AllowAll struct{}

// Check always reports the edge as valid.
func (AllowAll) Check(*diagram.Node, *diagram.Edge, *diagram.Node) diagram.ValidationResult {
	return diagram.ValidationResult{Valid: true}
}

// Func adapts a plain function to the scene's Checker interface.
type Func func(*diagram.Node, *diagram.Edge, *diagram.Node) diagram.ValidationResult

// Check invokes the wrapped function.
func (f Func) Check(s *diagram.Node, e *diagram.Edge, t *diagram.Node) diagram.ValidationResult {
	return f(s, e, t)
}

// BasicRules enforces the structural Graphol constraints that hold in
// every OWL 2 profile. Profile-specific semantics live in an external
// validator; these rules only keep diagrams structurally well formed.
type BasicRules struct{}

// Check applies the structural rules to the candidate edge.
func (BasicRules) Check(source *diagram.Node, edge *diagram.Edge, target *diagram.Node) diagram.ValidationResult {
	invalid := func(msg string) diagram.ValidationResult {
		return diagram.ValidationResult{Message: msg}
	}
	if source == target {
		return invalid("self connection is not valid")
	}
	switch edge.Kind() {
	case diagram.KindInput:
		if !target.Kind().IsConstructorKind() {
			return invalid("input edges can only target constructor nodes")
		}
	case diagram.KindMembership, diagram.KindInstanceOf:
		if source.Kind() != diagram.KindIndividual && source.Kind() != diagram.KindPropertyAssertion {
			return invalid("membership edges must start from an instance")
		}
	case diagram.KindInclusion, diagram.KindEquivalence:
		if source.Kind() == diagram.KindPropertyAssertion || target.Kind() == diagram.KindPropertyAssertion {
			return invalid("property assertion nodes cannot take part in inclusions")
		}
	}
	return diagram.ValidationResult{Valid: true}
}
