package repositories

import (
	"database/sql"
	"fmt"
)

// queryer is satisfied by both [sql.DB] and [sql.Tx].
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers give songs their catalog position. They survive deletes, so positions
// only ever grow and a re-import always sorts after the rows it replaced.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := reserveSequence(tx, table, 1)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// reserveSequence advances the table's sequence by n and returns the first reserved value.
func reserveSequence(q queryer, table string, n int) (int, error) {
	sequenceTable := table + "_sequence"

	_, err := q.Exec(fmt.Sprintf("UPDATE %s SET value = value + ? WHERE id = 1", sequenceTable), n)
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var last int
	err = q.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return last - n + 1, nil
}
