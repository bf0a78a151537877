package sqlite

// Schema DDL. The storage table mirrors the localStorage contract: one row
// per key, value stored verbatim.
const (
	createStorage = `CREATE TABLE IF NOT EXISTS storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all statements executed on Attach, in order.
var schemaDDL = []string{
	createStorage,
}
