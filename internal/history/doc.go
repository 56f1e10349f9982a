// Package history records folder-selection and search snapshots of a browser
// panel and lets the panel step back and forth through them.
//
// # Records
//
// A Record is an immutable snapshot of the selected folders, the search text
// and the search scope. Records compare by content. A record is valid only
// while every folder it names still resolves; invalid records are purged
// lazily, the next time the ledger is asked to move or to list.
//
// # Ledger
//
// Ledger is a bounded linear undo stack with a cursor:
//
//	ledger := history.NewLedger(catalog) // catalog implements Resolver
//	ledger.SetCurrentRecord(history.NewRecord([]string{"src"}, "", history.NotSearching))
//	ledger.SetCurrentRecord(history.NewRecord([]string{"docs"}, "", history.NotSearching))
//
//	rec, ok := ledger.Undo() // rec names "src"
//	rec, ok = ledger.Redo()  // rec names "docs"
//
// Pushing while the cursor is behind the tail discards the redo branch.
// Pushing at capacity evicts the oldest records. Reaching either end is not an
// error: Undo and Redo report ok=false and leave the cursor alone.
//
// A Ledger is not safe for concurrent use. It is owned by the single UI loop
// that polls its panel.
//
// # Registry
//
// Registry keeps one ledger per live panel, keyed by panel identity, for the
// lifetime of the process.
package history
