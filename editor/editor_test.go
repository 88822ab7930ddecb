package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"graphol/config"
	"graphol/diagram"
	"graphol/geometry"
)

func TestSceneModifier(t *testing.T) {
	if sceneModifier(tcell.ModNone) != diagram.ModNone {
		t.Error("no modifiers mapped to multi")
	}
	if sceneModifier(tcell.ModCtrl) != diagram.ModMulti {
		t.Error("ctrl not mapped to multi")
	}
	if sceneModifier(tcell.ModCtrl|tcell.ModShift) != diagram.ModMulti {
		t.Error("ctrl lost among other modifiers")
	}
}

func TestCoordinateMapping(t *testing.T) {
	e := New(config.Default(), nil)
	e.camX, e.camY = 100, 40

	p := e.toScene(3, 2)
	want := geometry.Point{X: 3*cellWidth + 100, Y: 2*cellHeight + 40}
	if p != want {
		t.Errorf("toScene = %+v, want %+v", p, want)
	}
	x, y := e.toCell(p)
	if x != 3 || y != 2 {
		t.Errorf("toCell round trip = (%d,%d), want (3,2)", x, y)
	}
}

func TestEditorAppliesSettings(t *testing.T) {
	e := New(config.Default(), nil)
	e.applySettings(config.Settings{GridSize: 40, SnapToGrid: true, UndoLimit: 10})
	if e.scene.GridSize != 40 || !e.scene.SnapToGrid {
		t.Error("settings not applied to the scene")
	}
}

// The config watcher runs on its own goroutine, so a reload must never
// touch the scene directly: it only parks the settings for the event
// loop to pick up.
func TestQueuedSettingsDeferredToEventLoop(t *testing.T) {
	e := New(config.Default(), nil)
	next := config.Settings{GridSize: 40, SnapToGrid: true, UndoLimit: 10}

	done := make(chan struct{})
	go func() {
		e.QueueSettings(next)
		close(done)
	}()
	for i := 0; i < 1000; i++ {
		e.scene.Snap(geometry.Point{X: 47, Y: 51})
	}
	<-done

	if e.scene.GridSize != 20 || e.scene.SnapToGrid {
		t.Fatal("queued settings applied outside the event loop")
	}
	e.applySettings(<-e.reloads)
	if e.scene.GridSize != 40 || !e.scene.SnapToGrid {
		t.Error("queued settings not applied when drained")
	}
}

func TestQueueSettingsSupersedesPendingReload(t *testing.T) {
	e := New(config.Default(), nil)
	e.QueueSettings(config.Settings{GridSize: 30, UndoLimit: 10})
	e.QueueSettings(config.Settings{GridSize: 40, UndoLimit: 10})

	got := <-e.reloads
	if got.GridSize != 40 {
		t.Errorf("drained GridSize = %v, want the later reload's 40", got.GridSize)
	}
	select {
	case s := <-e.reloads:
		t.Errorf("second reload still queued: %+v", s)
	default:
	}
}

func TestPaletteCoversDisjointKeys(t *testing.T) {
	for r := range paletteNodes {
		if _, clash := paletteEdges[r]; clash {
			t.Errorf("key %q bound to both a node and an edge kind", r)
		}
	}
}

func TestMouseGestureTranslation(t *testing.T) {
	e := New(config.Default(), nil)
	e.scene.SetMode(diagram.ModeNodeInsert, diagram.KindConcept)

	press := tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone)
	e.handleMouse(press)
	e.handleMouse(release)

	nodes := e.scene.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("node count = %d after click, want 1", len(nodes))
	}
	want := geometry.Point{X: 5 * cellWidth, Y: 3 * cellHeight}
	if nodes[0].Pos() != want {
		t.Errorf("node at %+v, want %+v", nodes[0].Pos(), want)
	}
}
