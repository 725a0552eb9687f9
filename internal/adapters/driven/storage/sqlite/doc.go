// Package sqlite persists documents, annotations and preferences in one
// SQLite database using the pure Go modernc.org/sqlite driver.
//
// The schema comes from the embedded migrations. Annotations belong to a
// document and are removed with it (ON DELETE CASCADE); foreign keys are
// switched on for every pooled connection and the journal runs in WAL mode.
//
// The default location is redliner.db under DefaultDataDir.
package sqlite
