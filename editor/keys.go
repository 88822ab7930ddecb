package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"graphol/diagram"
	"graphol/profile"
)

// paletteNodes maps palette keys to the node kind they arm for insertion.
var paletteNodes = map[rune]diagram.Kind{
	'c': diagram.KindConcept,
	'r': diagram.KindRole,
	'a': diagram.KindAttribute,
	'v': diagram.KindValueDomain,
	'i': diagram.KindIndividual,
	'd': diagram.KindDomainRestriction,
	'g': diagram.KindRangeRestriction,
	'u': diagram.KindUnion,
	'n': diagram.KindIntersection,
	'm': diagram.KindComplement,
}

// paletteEdges maps palette keys to the edge kind they arm for drawing.
var paletteEdges = map[rune]diagram.Kind{
	's': diagram.KindInclusion,
	'q': diagram.KindEquivalence,
	't': diagram.KindInput,
	'b': diagram.KindMembership,
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	switch e.input {
	case InputLabel:
		e.handleLabelKey(ev)
		return
	case InputCommand:
		e.handleCommandKey(ev)
		return
	}

	e.status = ""
	// tcell has no key-up events, so any unmodified keypress stands in for
	// the release of the multi-insert modifier. This runs before dispatch
	// so a palette key pressed right after still arms its own mode.
	if ev.Modifiers()&tcell.ModCtrl == 0 {
		e.scene.KeyReleased(diagram.ModMulti)
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		e.scene.SetMode(diagram.ModeIdle, diagram.KindUnknown)
		e.scene.ClearSelection()
	case tcell.KeyCtrlZ:
		if e.scene.UndoStack().CanUndo() {
			name := e.scene.UndoStack().UndoName()
			e.scene.UndoStack().Undo()
			e.status = "undo " + name
		}
	case tcell.KeyCtrlY:
		if e.scene.UndoStack().CanRedo() {
			name := e.scene.UndoStack().RedoName()
			e.scene.UndoStack().Redo()
			e.status = "redo " + name
		}
	case tcell.KeyCtrlA:
		e.scene.SelectAll()
	case tcell.KeyCtrlC:
		e.clipboard.Update(e.scene)
	case tcell.KeyCtrlX:
		e.clipboard.Cut(e.scene)
	case tcell.KeyCtrlV:
		e.clipboard.Paste(e.scene)
	case tcell.KeyCtrlS:
		if err := e.Save(""); err != nil {
			e.status = err.Error()
			e.log.Warn("save failed", zap.Error(err))
		}
	case tcell.KeyDelete, tcell.KeyBackspace2:
		if items := e.scene.SelectedItems(); len(items) > 0 {
			e.scene.UndoStack().Push(diagram.NewRemoveItemsCommand(e.scene, items))
		}
	case tcell.KeyUp:
		e.camY -= cellHeight
	case tcell.KeyDown:
		e.camY += cellHeight
	case tcell.KeyLeft:
		e.camX -= cellWidth
	case tcell.KeyRight:
		e.camX += cellWidth
	case tcell.KeyCtrlQ:
		e.quit = true
	case tcell.KeyRune:
		e.handleRune(ev.Rune())
	}
}

func (e *Editor) handleRune(r rune) {
	if kind, ok := paletteNodes[r]; ok {
		e.scene.SetMode(diagram.ModeNodeInsert, kind)
		e.status = "insert " + kind.String()
		return
	}
	if kind, ok := paletteEdges[r]; ok {
		e.scene.SetMode(diagram.ModeEdgeInsert, kind)
		e.status = "draw " + kind.String()
		return
	}
	switch r {
	case 'e':
		e.beginLabelEdit()
	case 'x':
		if edges := selectedSwappable(e.scene); len(edges) > 0 {
			e.scene.UndoStack().Push(diagram.NewSwapEdgesCommand(edges))
		}
	case 'o':
		if edges := selectedOfKind(e.scene, diagram.KindInclusion); len(edges) > 0 {
			e.scene.UndoStack().Push(diagram.NewToggleEdgeCompleteCommand(edges))
		}
	case 'f':
		if edges := selectedOfKind(e.scene, diagram.KindInput); len(edges) > 0 {
			e.scene.UndoStack().Push(diagram.NewToggleEdgeFunctionalCommand(edges))
		}
	case ']':
		if items := e.scene.SelectedItems(); len(items) > 0 {
			e.scene.UndoStack().Push(diagram.NewBringToFrontCommand(e.scene, items))
		}
	case '[':
		if items := e.scene.SelectedItems(); len(items) > 0 {
			e.scene.UndoStack().Push(diagram.NewSendToBackCommand(e.scene, items))
		}
	case '1', '2', '3', '4', '5', '6', '7':
		e.toggleAxiom(axiomForDigit(r))
	case '8':
		e.toggleAxiom(diagram.AxiomDomain)
	case '9':
		e.toggleAxiom(diagram.AxiomRange)
	case 'k':
		e.runProfileCheck()
	case ':':
		e.input = InputCommand
		e.textBuffer = e.textBuffer[:0]
	}
}

func axiomForDigit(r rune) diagram.Axiom {
	switch r {
	case '1':
		return diagram.AxiomFunctional
	case '2':
		return diagram.AxiomInverseFunctional
	case '3':
		return diagram.AxiomSymmetric
	case '4':
		return diagram.AxiomAsymmetric
	case '5':
		return diagram.AxiomReflexive
	case '6':
		return diagram.AxiomIrreflexive
	default:
		return diagram.AxiomTransitive
	}
}

// toggleAxiom composes or decomposes the axiom subgraph on the selected
// predicate node. The composing command owns the node's axiom flag.
func (e *Editor) toggleAxiom(a diagram.Axiom) {
	nodes := e.scene.SelectedNodes()
	if len(nodes) != 1 {
		e.status = "select one node"
		return
	}
	e.scene.ToggleAxiomComposition(nodes[0], a)
}

// runProfileCheck sweeps every edge through the structural rules and
// reports the first violation.
func (e *Editor) runProfileCheck() {
	issues := profile.NewSweep(e.scene, profile.BasicRules{}).Run()
	if len(issues) == 0 {
		e.status = "no profile violations"
		return
	}
	e.status = issues[0].EdgeID + ": " + issues[0].Message
}

func (e *Editor) beginLabelEdit() {
	nodes := e.scene.SelectedNodes()
	if len(nodes) != 1 || !nodes[0].EditableLabel() {
		e.status = "select one labeled node"
		return
	}
	e.input = InputLabel
	e.priorLabel = nodes[0].Label()
	e.textBuffer = []rune(nodes[0].Label())
}

func (e *Editor) handleLabelKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.input = InputNormal
	case tcell.KeyEnter:
		e.input = InputNormal
		text := strings.TrimSpace(string(e.textBuffer))
		nodes := e.scene.SelectedNodes()
		if len(nodes) != 1 || text == "" || text == e.priorLabel {
			return
		}
		// Alt+Enter renames every node sharing the old label.
		if ev.Modifiers()&tcell.ModAlt != 0 {
			e.scene.UndoStack().Push(diagram.NewRefactorLabelCommand(e.scene, e.priorLabel, text))
		} else {
			e.scene.UndoStack().Push(diagram.NewEditLabelCommand(e.scene, nodes[0], text))
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.textBuffer) > 0 {
			e.textBuffer = e.textBuffer[:len(e.textBuffer)-1]
		}
	case tcell.KeyRune:
		e.textBuffer = append(e.textBuffer, ev.Rune())
	}
}

func (e *Editor) handleCommandKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.input = InputNormal
	case tcell.KeyEnter:
		e.input = InputNormal
		e.runCommand(strings.TrimSpace(string(e.textBuffer)))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.textBuffer) > 0 {
			e.textBuffer = e.textBuffer[:len(e.textBuffer)-1]
		}
	case tcell.KeyRune:
		e.textBuffer = append(e.textBuffer, ev.Rune())
	}
}

func (e *Editor) runCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "w", "write":
		if err := e.Save(arg); err != nil {
			e.status = err.Error()
		}
	case "q", "quit":
		if !e.scene.UndoStack().IsClean() {
			e.status = "unsaved changes, use :q! to discard"
			return
		}
		e.quit = true
	case "q!":
		e.quit = true
	case "wq":
		if err := e.Save(arg); err != nil {
			e.status = err.Error()
			return
		}
		e.quit = true
	case "o", "open":
		e.scene.Clear()
		if err := e.Open(arg); err != nil {
			e.status = err.Error()
		}
	case "snap":
		e.scene.SnapToGrid = !e.scene.SnapToGrid
	default:
		e.status = "unknown command: " + name
	}
}

func selectedOfKind(s *diagram.Scene, kind diagram.Kind) []*diagram.Edge {
	var out []*diagram.Edge
	for _, edge := range s.SelectedEdges() {
		if edge.Kind() == kind {
			out = append(out, edge)
		}
	}
	return out
}

// selectedSwappable returns the selected edges whose direction can be
// reversed. Input edges are directional by construction and stay put.
func selectedSwappable(s *diagram.Scene) []*diagram.Edge {
	var out []*diagram.Edge
	for _, edge := range s.SelectedEdges() {
		if edge.Kind() != diagram.KindInput {
			out = append(out, edge)
		}
	}
	return out
}
