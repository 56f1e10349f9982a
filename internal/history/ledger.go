package history

import "slices"

// MaxRecords is the default ledger capacity.
const MaxRecords = 50

// Ledger is a bounded undo/redo sequence of records with a cursor on the
// current one. The cursor is -1 when the ledger is empty, or when a purge
// removed every record up to and including the current one.
type Ledger struct {
	records  []Record
	cursor   int
	capacity int
	resolver Resolver
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithCapacity overrides MaxRecords. Values below 1 are ignored.
func WithCapacity(n int) LedgerOption {
	return func(l *Ledger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// NewLedger creates an empty ledger. resolver decides which records are still
// valid; nil keeps every record that selects at least one folder.
func NewLedger(resolver Resolver, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		cursor:   -1,
		capacity: MaxRecords,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.records = make([]Record, 0, l.capacity)
	return l
}

// Capacity returns the maximum number of records kept.
func (l *Ledger) Capacity() int {
	return l.capacity
}

// Len returns the number of records held.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Cursor returns the index of the current record, -1 when empty.
func (l *Ledger) Cursor() int {
	return l.cursor
}

// Current returns the record at the cursor.
func (l *Ledger) Current() (Record, bool) {
	if l.cursor < 0 || l.cursor >= len(l.records) {
		return Record{}, false
	}
	return l.records[l.cursor], true
}

// CanUndo reports whether a record exists before the cursor.
// It does not purge, so a following Undo may still find nothing.
func (l *Ledger) CanUndo() bool {
	return l.cursor > 0
}

// CanRedo reports whether a record exists after the cursor.
func (l *Ledger) CanRedo() bool {
	return l.cursor < len(l.records)-1
}

// SetCurrentRecord appends record as the new current state. Records after the
// cursor are discarded first; the oldest records are evicted when the ledger
// is full.
func (l *Ledger) SetCurrentRecord(record Record) {
	if l.cursor < len(l.records)-1 {
		clear(l.records[l.cursor+1:])
		l.records = l.records[:l.cursor+1]
	}

	if len(l.records) >= l.capacity {
		over := len(l.records) - l.capacity + 1
		l.records = slices.Delete(l.records, 0, over)
		l.cursor -= over
		if l.cursor < -1 {
			l.cursor = -1
		}
	}

	l.records = append(l.records, record)
	l.cursor = len(l.records) - 1
}

// ReplaceCurrentScope rewrites the scope of the current record. It reports
// false when the ledger is empty.
func (l *Ledger) ReplaceCurrentScope(scope Scope) bool {
	if l.cursor < 0 || l.cursor >= len(l.records) {
		return false
	}
	l.records[l.cursor] = l.records[l.cursor].WithScope(scope)
	return true
}

// Undo moves the cursor one record back and returns the record there.
// ok is false when there is nothing to undo.
func (l *Ledger) Undo() (Record, bool) {
	l.purgeInvalid()
	return l.stepBack()
}

// Redo moves the cursor one record forward and returns the record there.
// ok is false when there is nothing to redo.
func (l *Ledger) Redo() (Record, bool) {
	l.purgeInvalid()
	return l.stepForward()
}

// UndoMultiple steps back up to n times, stopping at the oldest record, and
// returns the record it lands on. ok is false only for an empty ledger.
func (l *Ledger) UndoMultiple(n int) (Record, bool) {
	l.purgeInvalid()
	for i := 0; i < n; i++ {
		if _, ok := l.stepBack(); !ok {
			break
		}
	}
	return l.Current()
}

// RedoMultiple steps forward up to n times, stopping at the newest record.
func (l *Ledger) RedoMultiple(n int) (Record, bool) {
	l.purgeInvalid()
	for i := 0; i < n; i++ {
		if _, ok := l.stepForward(); !ok {
			break
		}
	}
	return l.Current()
}

// UndoList returns the records before the cursor, oldest first.
func (l *Ledger) UndoList() []Record {
	l.purgeInvalid()
	if !l.CanUndo() {
		return []Record{}
	}
	return slices.Clone(l.records[:l.cursor])
}

// RedoList returns the records after the cursor, nearest first.
func (l *Ledger) RedoList() []Record {
	l.purgeInvalid()
	if !l.CanRedo() {
		return []Record{}
	}
	return slices.Clone(l.records[l.cursor+1:])
}

// Clear drops every record.
func (l *Ledger) Clear() {
	clear(l.records)
	l.records = l.records[:0]
	l.cursor = -1
}

func (l *Ledger) stepBack() (Record, bool) {
	if !l.CanUndo() {
		return Record{}, false
	}
	l.cursor--
	return l.records[l.cursor], true
}

func (l *Ledger) stepForward() (Record, bool) {
	if !l.CanRedo() {
		return Record{}, false
	}
	l.cursor++
	return l.records[l.cursor], true
}

// purgeInvalid removes records whose folders no longer resolve. Scanning from
// the tail keeps the remaining indices stable while removing.
func (l *Ledger) purgeInvalid() {
	origin := l.cursor
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].Valid(l.resolver) {
			continue
		}
		l.records = slices.Delete(l.records, i, i+1)
		if i <= origin {
			l.cursor--
		}
	}
	if l.cursor < -1 {
		l.cursor = -1
	}
}
