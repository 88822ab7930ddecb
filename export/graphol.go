// Package export implements the Graphol XML serialization of a diagram
// scene. The exporter iterates the scene's entity views read-only; the
// loader replays entities through the scene's add entry point so every
// index and identity invariant holds on a loaded diagram.
package export

import (
	"encoding/xml"
	"fmt"
	"os"

	"graphol/diagram"
	"graphol/geometry"
)

// SchemaNamespace is the Graphol XML schema namespace.
const SchemaNamespace = "http://www.dis.uniroma1.it/~graphol/schema"

type xmlDocument struct {
	XMLName xml.Name `xml:"graphol"`
	Xmlns   string   `xml:"xmlns,attr"`
	GUID    string   `xml:"guid,attr"`
	Graph   xmlGraph `xml:"graph"`
}

type xmlGraph struct {
	Nodes []xmlNode `xml:"node"`
	Edges []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID          string  `xml:"id,attr"`
	Type        string  `xml:"type,attr"`
	X           float64 `xml:"x,attr"`
	Y           float64 `xml:"y,attr"`
	Label       string  `xml:"label,omitempty"`
	Special     string  `xml:"special,attr,omitempty"`
	Restriction string  `xml:"restriction,attr,omitempty"`
	Axioms      string  `xml:"axioms,attr,omitempty"`
}

type xmlEdge struct {
	ID         string     `xml:"id,attr"`
	Type       string     `xml:"type,attr"`
	Source     string     `xml:"source,attr"`
	Target     string     `xml:"target,attr"`
	Complete   bool       `xml:"complete,attr,omitempty"`
	Functional bool       `xml:"functional,attr,omitempty"`
	Points     []xmlPoint `xml:"point"`
}

type xmlPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// Marshal serializes the scene to Graphol XML.
func Marshal(s *diagram.Scene) ([]byte, error) {
	doc := xmlDocument{Xmlns: SchemaNamespace, GUID: s.GUID().String()}
	for _, n := range s.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, nodeToXML(n.Record()))
	}
	for _, e := range s.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, edgeToXML(e.Record()))
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal graphol document: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal populates an empty scene from Graphol XML. Node elements are
// restored before edge elements regardless of document order.
func Unmarshal(data []byte, s *diagram.Scene) error {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse graphol document: %w", err)
	}
	for _, xn := range doc.Graph.Nodes {
		rec, err := nodeFromXML(xn)
		if err != nil {
			return err
		}
		if _, err := s.RestoreNode(rec); err != nil {
			return err
		}
	}
	for _, xe := range doc.Graph.Edges {
		rec, err := edgeFromXML(xe)
		if err != nil {
			return err
		}
		if _, err := s.RestoreEdge(rec); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the scene to a Graphol file.
func Save(path string, s *diagram.Scene) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a Graphol file into an empty scene.
func Load(path string, s *diagram.Scene) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data, s)
}

func nodeToXML(rec diagram.NodeRecord) xmlNode {
	xn := xmlNode{
		ID:      rec.ID,
		Type:    rec.Kind.String(),
		X:       rec.Pos.X,
		Y:       rec.Pos.Y,
		Label:   rec.Label,
		Special: string(rec.Special),
	}
	if rec.Kind == diagram.KindDomainRestriction || rec.Kind == diagram.KindRangeRestriction {
		xn.Restriction = rec.Restriction.String()
	}
	for a := diagram.AxiomFunctional; a <= diagram.AxiomTransitive; a++ {
		if rec.Flags[a] {
			if xn.Axioms != "" {
				xn.Axioms += " "
			}
			xn.Axioms += a.String()
		}
	}
	return xn
}

func nodeFromXML(xn xmlNode) (diagram.NodeRecord, error) {
	kind := diagram.KindFromName(xn.Type)
	if kind == diagram.KindUnknown {
		return diagram.NodeRecord{}, fmt.Errorf("node %s: unknown type %q", xn.ID, xn.Type)
	}
	rec := diagram.NodeRecord{
		ID:          xn.ID,
		Kind:        kind,
		Pos:         geometry.Point{X: xn.X, Y: xn.Y},
		Label:       xn.Label,
		Special:     diagram.Special(xn.Special),
		Restriction: restrictionFromName(xn.Restriction),
	}
	if xn.Axioms != "" {
		rec.Flags = make(map[diagram.Axiom]bool)
		for a := diagram.AxiomFunctional; a <= diagram.AxiomTransitive; a++ {
			if containsWord(xn.Axioms, a.String()) {
				rec.Flags[a] = true
			}
		}
	}
	return rec, nil
}

func edgeToXML(rec diagram.EdgeRecord) xmlEdge {
	xe := xmlEdge{
		ID:         rec.ID,
		Type:       rec.Kind.String(),
		Source:     rec.Source,
		Target:     rec.Target,
		Complete:   rec.Complete,
		Functional: rec.Functional,
	}
	for _, bp := range rec.Breakpoints {
		xe.Points = append(xe.Points, xmlPoint{X: bp.X, Y: bp.Y})
	}
	return xe
}

func edgeFromXML(xe xmlEdge) (diagram.EdgeRecord, error) {
	kind := diagram.KindFromName(xe.Type)
	if kind == diagram.KindUnknown {
		return diagram.EdgeRecord{}, fmt.Errorf("edge %s: unknown type %q", xe.ID, xe.Type)
	}
	rec := diagram.EdgeRecord{
		ID:         xe.ID,
		Kind:       kind,
		Source:     xe.Source,
		Target:     xe.Target,
		Complete:   xe.Complete,
		Functional: xe.Functional,
	}
	for _, p := range xe.Points {
		rec.Breakpoints = append(rec.Breakpoints, geometry.Point{X: p.X, Y: p.Y})
	}
	return rec, nil
}

func restrictionFromName(name string) diagram.Restriction {
	switch name {
	case "forall":
		return diagram.RestrictionForall
	case "self":
		return diagram.RestrictionSelf
	case "(min, max)":
		return diagram.RestrictionCardinality
	default:
		return diagram.RestrictionExists
	}
}

func containsWord(list, word string) bool {
	start := 0
	for i := 0; i <= len(list); i++ {
		if i == len(list) || list[i] == ' ' {
			if list[start:i] == word {
				return true
			}
			start = i + 1
		}
	}
	return false
}
