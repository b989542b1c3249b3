package game

// FieldEntry is one recorded play with its owner.
type FieldEntry struct {
	Play    Play
	OwnerID string
}

// Field is the append-only ordered history of plays in the current trick.
// The field never re-validates: only plays accepted by the validator are
// appended, and only by the turn orchestrator.
type Field struct {
	history []FieldEntry
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{}
}

// Append records an accepted play.
func (f *Field) Append(play Play, ownerID string) {
	f.history = append(f.history, FieldEntry{Play: play, OwnerID: ownerID})
}

// Current returns the play on top of the field. The second result is
// false when the field is empty, a distinct state meaning any structural
// shape may open the next trick.
func (f *Field) Current() (Play, bool) {
	if len(f.history) == 0 {
		return Play{}, false
	}
	return f.history[len(f.history)-1].Play, true
}

// CurrentEntry returns the most recent history entry.
func (f *Field) CurrentEntry() (FieldEntry, bool) {
	if len(f.history) == 0 {
		return FieldEntry{}, false
	}
	return f.history[len(f.history)-1], true
}

// Last returns up to n most recent entries, oldest first.
func (f *Field) Last(n int) []FieldEntry {
	if n > len(f.history) {
		n = len(f.history)
	}
	out := make([]FieldEntry, n)
	copy(out, f.history[len(f.history)-n:])
	return out
}

// IsEmpty reports whether no play has been recorded since the last clear.
func (f *Field) IsEmpty() bool {
	return len(f.history) == 0
}

// Len returns the number of recorded entries.
func (f *Field) Len() int {
	return len(f.history)
}

// History returns a copy of the full history, oldest first.
func (f *Field) History() []FieldEntry {
	out := make([]FieldEntry, len(f.history))
	copy(out, f.history)
	return out
}

// Clear discards the history. Called by the orchestrator when a
// field-clearing effect resolves; the engine itself never clears.
func (f *Field) Clear() {
	f.history = nil
}
