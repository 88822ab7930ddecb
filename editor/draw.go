package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"graphol/diagram"
	"graphol/geometry"
)

var (
	styleDefault  = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePending  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// borderForKind picks the box-drawing characters used for a node kind, a
// rough terminal stand-in for the Graphol shape vocabulary.
func borderForKind(kind diagram.Kind) (h, v, tl, tr, bl, br rune) {
	switch kind {
	case diagram.KindRole, diagram.KindRoleInverse, diagram.KindRoleChain:
		return '─', '│', '╱', '╲', '╲', '╱' // diamond-ish
	case diagram.KindAttribute, diagram.KindValueDomain:
		return '─', '│', '╭', '╮', '╰', '╯' // rounded
	default:
		return '─', '│', '┌', '┐', '└', '┘'
	}
}

func (e *Editor) render() {
	if e.screen == nil {
		return
	}
	e.screen.Clear()
	// Paint in z order so overlapping entities stack the way picking sees
	// them. Edges first keeps node boxes legible regardless of z.
	for _, edge := range e.scene.Edges() {
		e.drawEdge(edge)
	}
	if pending := e.scene.PendingEdge(); pending != nil {
		e.drawPath(pending.Path(), stylePending)
	}
	for _, node := range e.scene.Nodes() {
		e.drawNode(node)
	}
	e.drawStatusBar()
	e.screen.Show()
}

// toCell converts scene coordinates into terminal cell coordinates.
func (e *Editor) toCell(p geometry.Point) (int, int) {
	return int((p.X - e.camX) / cellWidth), int((p.Y - e.camY) / cellHeight)
}

func (e *Editor) drawNode(n *diagram.Node) {
	style := styleDefault
	if n.Selected() {
		style = styleSelected
	}
	r := n.BoundingRect()
	x0, y0 := e.toCell(r.Min)
	x1, y1 := e.toCell(r.Max)
	if y1 <= y0 {
		y1 = y0 + 1
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	h, v, tl, tr, bl, br := borderForKind(n.Kind())
	for x := x0 + 1; x < x1; x++ {
		e.screen.SetContent(x, y0, h, nil, style)
		e.screen.SetContent(x, y1, h, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		e.screen.SetContent(x0, y, v, nil, style)
		e.screen.SetContent(x1, y, v, nil, style)
	}
	e.screen.SetContent(x0, y0, tl, nil, style)
	e.screen.SetContent(x1, y0, tr, nil, style)
	e.screen.SetContent(x0, y1, bl, nil, style)
	e.screen.SetContent(x1, y1, br, nil, style)

	label := n.Label()
	if marks := axiomMarks(n); marks != "" {
		label += " " + marks
	}
	e.drawText(x0+1, (y0+y1)/2, x1-x0-1, label, style)
}

// axiomMarks renders the role/attribute axiom flags as a compact suffix.
func axiomMarks(n *diagram.Node) string {
	marks := ""
	for _, a := range []diagram.Axiom{
		diagram.AxiomFunctional,
		diagram.AxiomInverseFunctional,
		diagram.AxiomSymmetric,
		diagram.AxiomAsymmetric,
		diagram.AxiomReflexive,
		diagram.AxiomIrreflexive,
		diagram.AxiomTransitive,
	} {
		if n.AxiomFlag(a) {
			marks += string(a.String()[0])
		}
	}
	return marks
}

func (e *Editor) drawEdge(edge *diagram.Edge) {
	style := styleDefault
	if edge.Selected() {
		style = styleSelected
	}
	e.drawPath(edge.Path(), style)
	if len(edge.Path()) >= 2 {
		tip := edge.Path()[len(edge.Path())-1]
		x, y := e.toCell(tip)
		mark := '>'
		if edge.Kind() == diagram.KindEquivalence || edge.Complete() {
			mark = '='
		} else if edge.Functional() {
			mark = '*'
		}
		e.screen.SetContent(x, y, mark, nil, style)
	}
}

func (e *Editor) drawPath(path []geometry.Point, style tcell.Style) {
	for i := 1; i < len(path); i++ {
		e.drawLine(path[i-1], path[i], style)
	}
}

// drawLine rasterizes a scene-space segment onto cells with a simple DDA.
func (e *Editor) drawLine(a, b geometry.Point, style tcell.Style) {
	x0, y0 := e.toCell(a)
	x1, y1 := e.toCell(b)
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		e.screen.SetContent(x0, y0, '·', nil, style)
		return
	}
	ch := '─'
	if abs(dy) > abs(dx) {
		ch = '│'
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		e.screen.SetContent(x, y, ch, nil, style)
	}
}

func (e *Editor) drawStatusBar() {
	w, h := e.screen.Size()
	y := h - 1
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	var line string
	switch e.input {
	case InputLabel:
		line = "label: " + string(e.textBuffer)
	case InputCommand:
		line = ":" + string(e.textBuffer)
	default:
		name := e.path
		if name == "" {
			name = "[untitled]"
		}
		if !e.scene.UndoStack().IsClean() {
			name += " *"
		}
		line = fmt.Sprintf("%s  %s  nodes:%d edges:%d", name, modeLabel(e.scene), len(e.scene.Nodes()), len(e.scene.Edges()))
		if e.status != "" {
			line += "  " + e.status
		}
	}
	e.drawText(0, y, w, line, styleStatus)
}

func modeLabel(s *diagram.Scene) string {
	switch s.Mode() {
	case diagram.ModeNodeInsert, diagram.ModeEdgeInsert:
		return s.Mode().String() + ":" + s.ModeParam().String()
	default:
		return s.Mode().String()
	}
}

func (e *Editor) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if i >= maxWidth {
			break
		}
		e.screen.SetContent(x+i, y, r, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
