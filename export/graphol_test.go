package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphol/diagram"
	"graphol/geometry"
)

// buildScene assembles a small diagram exercising every serialized field:
// labels, special nodes, restrictions, axiom flags, breakpoints and edge
// markers.
func buildScene(t *testing.T) *diagram.Scene {
	t.Helper()
	s := diagram.NewScene(0, 0, nil)

	person, err := s.RestoreNode(diagram.NodeRecord{
		ID: "n0", Kind: diagram.KindConcept,
		Pos: geometry.Point{X: 100, Y: 100}, Label: "Person",
	})
	require.NoError(t, err)
	_ = person

	_, err = s.RestoreNode(diagram.NodeRecord{
		ID: "n1", Kind: diagram.KindConcept,
		Pos: geometry.Point{X: 400, Y: 100}, Label: "Animal",
	})
	require.NoError(t, err)

	_, err = s.RestoreNode(diagram.NodeRecord{
		ID: "n2", Kind: diagram.KindRole,
		Pos:   geometry.Point{X: 100, Y: 300},
		Label: "hasParent",
		Flags: map[diagram.Axiom]bool{
			diagram.AxiomFunctional: true,
			diagram.AxiomAsymmetric: true,
		},
	})
	require.NoError(t, err)

	_, err = s.RestoreNode(diagram.NodeRecord{
		ID: "n3", Kind: diagram.KindDomainRestriction,
		Pos: geometry.Point{X: 250, Y: 300}, Label: "self",
		Restriction: diagram.RestrictionSelf,
	})
	require.NoError(t, err)

	_, err = s.RestoreNode(diagram.NodeRecord{
		ID: "n4", Kind: diagram.KindConcept,
		Pos: geometry.Point{X: 400, Y: 300}, Label: "TOP",
		Special: diagram.SpecialTop,
	})
	require.NoError(t, err)

	_, err = s.RestoreEdge(diagram.EdgeRecord{
		ID: "e0", Kind: diagram.KindInclusion, Source: "n0", Target: "n1",
		Breakpoints: []geometry.Point{{X: 250, Y: 40}},
		Complete:    true,
	})
	require.NoError(t, err)

	_, err = s.RestoreEdge(diagram.EdgeRecord{
		ID: "e1", Kind: diagram.KindInput, Source: "n2", Target: "n3",
		Functional: true,
	})
	require.NoError(t, err)

	return s
}

func TestRoundTrip(t *testing.T) {
	s := buildScene(t)
	data, err := Marshal(s)
	require.NoError(t, err)

	loaded := diagram.NewScene(0, 0, nil)
	require.NoError(t, Unmarshal(data, loaded))

	require.Len(t, loaded.Nodes(), 5)
	require.Len(t, loaded.Edges(), 2)

	person := loaded.Node("n0")
	require.NotNil(t, person)
	assert.Equal(t, diagram.KindConcept, person.Kind())
	assert.Equal(t, "Person", person.Label())
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, person.Pos())

	role := loaded.Node("n2")
	require.NotNil(t, role)
	assert.True(t, role.AxiomFlag(diagram.AxiomFunctional))
	assert.True(t, role.AxiomFlag(diagram.AxiomAsymmetric))
	assert.False(t, role.AxiomFlag(diagram.AxiomSymmetric))

	restriction := loaded.Node("n3")
	require.NotNil(t, restriction)
	assert.Equal(t, diagram.RestrictionSelf, restriction.RestrictionKind())

	top := loaded.Node("n4")
	require.NotNil(t, top)
	assert.Equal(t, diagram.SpecialTop, top.SpecialKind())
	assert.False(t, top.EditableLabel(), "special node label must stay fixed")

	incl := loaded.Edge("e0")
	require.NotNil(t, incl)
	assert.Equal(t, "n0", incl.Source().ID())
	assert.Equal(t, "n1", incl.Target().ID())
	assert.True(t, incl.Complete())
	assert.Equal(t, []geometry.Point{{X: 250, Y: 40}}, incl.Breakpoints())

	input := loaded.Edge("e1")
	require.NotNil(t, input)
	assert.True(t, input.Functional())
}

func TestLoadedSceneGeneratesFreshIDs(t *testing.T) {
	s := buildScene(t)
	data, err := Marshal(s)
	require.NoError(t, err)

	loaded := diagram.NewScene(0, 0, nil)
	require.NoError(t, Unmarshal(data, loaded))

	assert.Equal(t, "n5", loaded.NewNode(diagram.KindConcept).ID())
	assert.Equal(t, "e2", loaded.NewEdge(diagram.KindInclusion, nil).ID())
}

func TestLoadedSceneLabelIndex(t *testing.T) {
	s := buildScene(t)
	data, err := Marshal(s)
	require.NoError(t, err)

	loaded := diagram.NewScene(0, 0, nil)
	require.NoError(t, Unmarshal(data, loaded))

	require.Len(t, loaded.NodesByLabel("Person"), 1)
	assert.Empty(t, loaded.NodesByLabel("TOP"), "special nodes are not label indexed")
}

func TestMarshalDocumentShape(t *testing.T) {
	s := buildScene(t)
	data, err := Marshal(s)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "<?xml"))
	assert.Contains(t, text, SchemaNamespace)
	assert.Contains(t, text, s.GUID().String())
	assert.Contains(t, text, `type="domain-restriction"`)
	assert.Contains(t, text, `restriction="self"`)
	assert.Contains(t, text, "functional asymmetric")
}

func TestUnmarshalRejectsUnknownKinds(t *testing.T) {
	doc := `<graphol><graph><node id="n0" type="widget" x="0" y="0"></node></graph></graphol>`
	err := Unmarshal([]byte(doc), diagram.NewScene(0, 0, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget")
}

func TestUnmarshalRejectsDanglingEdge(t *testing.T) {
	doc := `<graphol><graph>
		<node id="n0" type="concept" x="0" y="0"></node>
		<edge id="e0" type="inclusion" source="n0" target="n9"></edge>
	</graph></graphol>`
	err := Unmarshal([]byte(doc), diagram.NewScene(0, 0, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n9")
}

func TestSaveLoadFile(t *testing.T) {
	s := buildScene(t)
	path := filepath.Join(t.TempDir(), "family.graphol")
	require.NoError(t, Save(path, s))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	loaded := diagram.NewScene(0, 0, nil)
	require.NoError(t, Load(path, loaded))
	assert.Len(t, loaded.Nodes(), 5)
	assert.Len(t, loaded.Edges(), 2)
}
