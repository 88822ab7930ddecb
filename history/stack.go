// Package history implements the linear undo/redo command stack used by the
// diagram scene. Every reversible mutation of a diagram is represented as a
// Command; the stack owns the ordering, the redo tail and the bounded depth.
package history

// Command is a single reversible mutation. Apply establishes the post-state
// and Undo restores the exact pre-state. Both are expected to always succeed
// on a well-formed stack: a command that cannot replay indicates the scene's
// add/remove discipline was bypassed, which is a programming error.
type Command interface {
	Apply()
	Undo()
	Name() string
}

// Stack is a bounded linear-history undo stack. Pushing after undos discards
// the redo tail; exceeding the depth limit evicts the oldest command, which
// then can never be undone past. A clean baseline supports dirty-document
// tracking.
type Stack struct {
	commands []Command
	index    int // number of commands currently applied
	limit    int
	baseline int // index marking the clean state, -1 once unreachable
}

// DefaultLimit is the stack depth used when no limit is configured.
const DefaultLimit = 50

// NewStack creates a command stack holding at most limit commands.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push appends the command, applies it, and discards any redo tail.
func (s *Stack) Push(c Command) {
	if s.index < len(s.commands) {
		s.commands = s.commands[:s.index]
		if s.baseline > s.index {
			// the clean state lived in the discarded tail
			s.baseline = -1
		}
	}
	s.commands = append(s.commands, c)
	s.index++
	c.Apply()

	if len(s.commands) > s.limit {
		evicted := len(s.commands) - s.limit
		s.commands = s.commands[evicted:]
		s.index -= evicted
		if s.baseline >= 0 {
			s.baseline -= evicted
			if s.baseline < 0 {
				s.baseline = -1
			}
		}
	}
}

// CanUndo returns true if there is a command to undo.
func (s *Stack) CanUndo() bool {
	return s.index > 0
}

// CanRedo returns true if there is an undone command to redo.
func (s *Stack) CanRedo() bool {
	return s.index < len(s.commands)
}

// Undo reverts the most recently applied command. No-op when nothing can
// be undone.
func (s *Stack) Undo() {
	if !s.CanUndo() {
		return
	}
	s.index--
	s.commands[s.index].Undo()
}

// Redo reapplies the most recently undone command. No-op when nothing can
// be redone.
func (s *Stack) Redo() {
	if !s.CanRedo() {
		return
	}
	s.commands[s.index].Apply()
	s.index++
}

// Count returns the number of commands currently held by the stack.
func (s *Stack) Count() int {
	return len(s.commands)
}

// Index returns the position of the undo/redo cursor.
func (s *Stack) Index() int {
	return s.index
}

// UndoName returns the name of the command that Undo would revert.
func (s *Stack) UndoName() string {
	if !s.CanUndo() {
		return ""
	}
	return s.commands[s.index-1].Name()
}

// RedoName returns the name of the command that Redo would reapply.
func (s *Stack) RedoName() string {
	if !s.CanRedo() {
		return ""
	}
	return s.commands[s.index].Name()
}

// SetClean marks the current cursor position as the clean baseline.
func (s *Stack) SetClean() {
	s.baseline = s.index
}

// IsClean reports whether the cursor sits at the clean baseline.
func (s *Stack) IsClean() bool {
	return s.baseline == s.index
}

// Clear discards the whole history. The clean baseline resets to the empty
// stack.
func (s *Stack) Clear() {
	s.commands = nil
	s.index = 0
	s.baseline = 0
}
