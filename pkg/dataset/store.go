package dataset

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// A dataset file is a SQLite database with two tables:
//
//	slots(seq INTEGER PRIMARY KEY, slot INTEGER, keys BLOB)
//	meta(name TEXT PRIMARY KEY, value INTEGER)
//
// seq preserves fetch-completion order. meta records the requested range
// and the record/key totals, which Load verifies against the rows it read.

// Save persists the dataset at path, replacing any previous file. The
// replacement is written to a temp file and renamed into place, so a
// failure mid-save leaves the previous dataset intact.
func Save(path string, ds *Dataset) error {
	tmp := path + ".tmp"
	// A stale temp file from an earlier run would collide on the meta rows.
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale temp dataset: %w", err)
	}
	if err := writeDataset(tmp, ds); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeDataset(path string, ds *Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer db.Close()

	schema := `
	CREATE TABLE slots (
		seq  INTEGER PRIMARY KEY,
		slot INTEGER NOT NULL,
		keys BLOB NOT NULL
	);
	CREATE TABLE meta (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init dataset schema: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`); err != nil {
		return fmt.Errorf("set pragma: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO slots (seq, slot, keys) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, rec := range ds.Records {
		if _, err := stmt.Exec(i, int64(rec.Slot), encodeKeys(rec.Keys)); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert slot %d: %w", rec.Slot, err)
		}
	}

	for name, value := range map[string]int64{
		"start_slot":   int64(ds.StartSlot),
		"end_slot":     int64(ds.EndSlot),
		"record_count": int64(len(ds.Records)),
		"key_count":    int64(ds.TotalKeys()),
	} {
		if _, err := tx.Exec("INSERT INTO meta (name, value) VALUES (?, ?)", name, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert meta %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Load reads a dataset file and verifies its metadata. Any mismatch or
// corruption is fatal to the caller: there is nothing to benchmark.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer db.Close()

	meta := make(map[string]int64)
	rows, err := db.Query("SELECT name, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			rows.Close()
			return nil, err
		}
		meta[name] = value
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range []string{"start_slot", "end_slot", "record_count", "key_count"} {
		if _, ok := meta[name]; !ok {
			return nil, fmt.Errorf("dataset %s: missing meta %q", path, name)
		}
	}

	ds := &Dataset{
		StartSlot: uint64(meta["start_slot"]),
		EndSlot:   uint64(meta["end_slot"]),
	}

	rows, err = db.Query("SELECT slot, keys FROM slots ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("read slots: %w", err)
	}
	defer rows.Close()

	totalKeys := 0
	for rows.Next() {
		var slot int64
		var blob []byte
		if err := rows.Scan(&slot, &blob); err != nil {
			return nil, err
		}
		keys, err := decodeKeys(blob)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot, err)
		}
		ds.Records = append(ds.Records, Record{Slot: uint64(slot), Keys: keys})
		totalKeys += len(keys)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if int64(len(ds.Records)) != meta["record_count"] {
		return nil, fmt.Errorf("dataset %s: %d records, meta says %d", path, len(ds.Records), meta["record_count"])
	}
	if int64(totalKeys) != meta["key_count"] {
		return nil, fmt.Errorf("dataset %s: %d keys, meta says %d", path, totalKeys, meta["key_count"])
	}

	return ds, nil
}
