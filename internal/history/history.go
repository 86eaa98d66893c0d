// Package history implements linear undo/redo over whole-collection
// annotation snapshots. Committing after an undo discards the redo tail;
// snapshots are immutable once committed.
package history

import "sketchpad/internal/annotation"

// Log is an append-only snapshot log with a cursor. A new Log holds a
// single empty snapshot so that undoing past the first commit yields an
// empty canvas.
type Log struct {
	snapshots [][]annotation.Annotation
	cursor    int
}

// New creates a history log seeded with an empty snapshot.
func New() *Log {
	return &Log{snapshots: [][]annotation.Annotation{nil}}
}

// Commit records the collection as a new snapshot, discarding any redo
// entries beyond the cursor. The snapshot is a deep copy; later mutation
// of the working collection cannot perturb it.
func (l *Log) Commit(annotations []annotation.Annotation) {
	snapshot := annotation.CloneAll(annotations)
	l.snapshots = append(l.snapshots[:l.cursor+1], snapshot)
	l.cursor = len(l.snapshots) - 1
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool { return l.cursor < len(l.snapshots)-1 }

// Undo steps the cursor back and returns a working copy of that snapshot
// with all selection and editing flags cleared. The second result is
// false when there is nothing to undo.
func (l *Log) Undo() ([]annotation.Annotation, bool) {
	if !l.CanUndo() {
		return nil, false
	}
	l.cursor--
	return l.checkout(), true
}

// Redo steps the cursor forward and returns a working copy of that
// snapshot with all selection and editing flags cleared. The second
// result is false when there is nothing to redo.
func (l *Log) Redo() ([]annotation.Annotation, bool) {
	if !l.CanRedo() {
		return nil, false
	}
	l.cursor++
	return l.checkout(), true
}

// Current returns a working copy of the snapshot at the cursor.
func (l *Log) Current() []annotation.Annotation {
	return annotation.CloneAll(l.snapshots[l.cursor])
}

// Len returns the number of snapshots, including the initial empty one.
func (l *Log) Len() int { return len(l.snapshots) }

// checkout clones the cursor snapshot and clears selection state, so a
// restored collection never carries a stale selection.
func (l *Log) checkout() []annotation.Annotation {
	out := annotation.CloneAll(l.snapshots[l.cursor])
	for _, a := range out {
		attrs := a.Common()
		attrs.Selected = false
		attrs.Editing = false
	}
	return out
}
