// Package editor is the interactive terminal shell around a diagram scene.
// It translates tcell input events into scene gestures and paints the scene
// onto the terminal grid.
package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"graphol/config"
	"graphol/diagram"
	"graphol/export"
	"graphol/geometry"
	"graphol/profile"
)

// Terminal cells are taller than they are wide, so scene units map onto
// cells with separate horizontal and vertical scales.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

// InputMode says what keyboard input currently means.
type InputMode int

const (
	InputNormal InputMode = iota
	InputLabel            // typing a label for the selected node
	InputCommand          // typing a :command
)

// Editor owns the scene, the screen and the UI state between them.
type Editor struct {
	scene  *diagram.Scene
	screen tcell.Screen
	log    *zap.Logger

	path    string // file backing the scene, empty for a new diagram
	camX    float64
	camY    float64
	buttons tcell.ButtonMask

	input      InputMode
	textBuffer []rune
	priorLabel string
	status     string
	clipboard  diagram.Clipboard

	settings config.Settings
	reloads  chan config.Settings
	quit     bool
}

// New builds an editor around an empty scene configured from settings.
func New(settings config.Settings, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	scene := diagram.NewScene(settings.GridSize, settings.UndoLimit, log)
	scene.SnapToGrid = settings.SnapToGrid
	scene.SetChecker(profile.BasicRules{})
	e := &Editor{
		scene:    scene,
		log:      log,
		settings: settings,
		reloads:  make(chan config.Settings, 1),
	}
	scene.OnEdgeRejected = func(edge *diagram.Edge, reason string) {
		e.status = reason
	}
	return e
}

// Open loads a diagram file into the editor's scene.
func (e *Editor) Open(path string) error {
	if err := export.Load(path, e.scene); err != nil {
		return err
	}
	e.path = path
	e.scene.UndoStack().SetClean()
	e.log.Info("diagram opened", zap.String("path", path))
	return nil
}

// Save writes the scene back to its file, or to path if given.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return fmt.Errorf("no file name")
	}
	if err := export.Save(path, e.scene); err != nil {
		return err
	}
	e.path = path
	e.scene.UndoStack().SetClean()
	e.status = "saved " + path
	return nil
}

// QueueSettings hands freshly loaded settings to the event loop. The
// scene and all editor state belong to the loop goroutine, so the config
// watcher must never apply settings itself. A reload waiting in the
// channel is superseded rather than queued behind.
func (e *Editor) QueueSettings(s config.Settings) {
	for {
		select {
		case e.reloads <- s:
			return
		default:
			select {
			case <-e.reloads:
			default:
			}
		}
	}
}

// applySettings swaps in reloaded settings. Event loop only.
func (e *Editor) applySettings(s config.Settings) {
	e.settings = s
	e.scene.GridSize = s.GridSize
	e.scene.SnapToGrid = s.SnapToGrid
	e.status = "settings reloaded"
}

// Run takes over the terminal until the user quits.
func (e *Editor) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	e.screen = screen

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	e.render()
	for !e.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventMouse:
				e.handleMouse(ev)
			case *tcell.EventKey:
				e.handleKey(ev)
			}
		case s := <-e.reloads:
			e.applySettings(s)
		}
		e.render()
	}
	return nil
}

// sceneModifier maps tcell modifier keys onto scene modifiers. Ctrl held
// during insertion keeps the insert mode armed for repeated placement.
func sceneModifier(mod tcell.ModMask) diagram.Modifier {
	if mod&tcell.ModCtrl != 0 {
		return diagram.ModMulti
	}
	return diagram.ModNone
}

// toScene converts a terminal cell position into scene coordinates.
func (e *Editor) toScene(x, y int) geometry.Point {
	return geometry.Point{
		X: float64(x)*cellWidth + e.camX,
		Y: float64(y)*cellHeight + e.camY,
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := e.toScene(x, y)
	mod := sceneModifier(ev.Modifiers())
	buttons := ev.Buttons()

	pressed := buttons&tcell.Button1 != 0
	held := e.buttons&tcell.Button1 != 0
	switch {
	case pressed && !held:
		e.scene.MousePress(p, mod)
	case pressed && held:
		e.scene.MouseMove(p, mod)
	case !pressed && held:
		e.scene.MouseRelease(p, mod)
	}
	e.buttons = buttons
}
