// Package history provides the host-side undo stack. The connectivity core
// only reports intents; commands here materialize them so they can be
// undone and redone.
package history

// Command is a reversible edit.
type Command interface {
	Do()
	Undo()
}

// Stack records commands in execution order.
type Stack struct {
	done   []Command
	undone []Command
	clean  int // index into done marking the last saved state
}

// NewStack creates an empty undo stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push executes a command and records it. The redo list is discarded.
func (s *Stack) Push(c Command) {
	if c == nil {
		return
	}
	c.Do()
	if s.clean > len(s.done) {
		// The saved state sits on the redo branch being discarded; it can
		// no longer be reached.
		s.clean = -1
	}
	s.done = append(s.done, c)
	s.undone = nil
}

// Undo reverts the most recent command. Returns false when there is nothing
// to undo.
func (s *Stack) Undo() bool {
	if len(s.done) == 0 {
		return false
	}
	c := s.done[len(s.done)-1]
	s.done = s.done[:len(s.done)-1]
	c.Undo()
	s.undone = append(s.undone, c)
	return true
}

// Redo re-applies the most recently undone command. Returns false when there
// is nothing to redo.
func (s *Stack) Redo() bool {
	if len(s.undone) == 0 {
		return false
	}
	c := s.undone[len(s.undone)-1]
	s.undone = s.undone[:len(s.undone)-1]
	c.Do()
	s.done = append(s.done, c)
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool {
	return len(s.done) > 0
}

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool {
	return len(s.undone) > 0
}

// SetClean marks the current position as the saved state.
func (s *Stack) SetClean() {
	s.clean = len(s.done)
}

// IsDirty reports whether the document differs from the saved state.
func (s *Stack) IsDirty() bool {
	return s.clean != len(s.done)
}

// Clear discards all recorded commands.
func (s *Stack) Clear() {
	s.done = nil
	s.undone = nil
	s.clean = 0
}
