package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"signsheet/internal/store"
)

// Repository persists attendance records in the local store.
type Repository struct {
	db *store.DB
}

// NewRepository creates a repo over an opened store.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, complete_name, sex, designation, division,
	status_pwd, status_senior, status_osy, signature, timestamp_ms`

// Insert writes a new record, stamping it with the current time. The store
// assigns the id, which is returned on the record. The caller is expected
// to have validated the record already.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	rec.Timestamp = time.Now().UnixMilli()

	args := []any{
		rec.CompleteName, rec.Sex, rec.Designation, rec.Division,
		boolInt(rec.Status.PWD), boolInt(rec.Status.Senior), boolInt(rec.Status.OSY),
		rec.Signature, rec.Timestamp,
	}

	if r.db.Backend == store.BackendPostgres {
		row := r.db.Client.QueryRowContext(ctx, r.db.Rebind(`
			INSERT INTO records (complete_name, sex, designation, division,
				status_pwd, status_senior, status_osy, signature, timestamp_ms)
			VALUES (?,?,?,?,?,?,?,?,?)
			RETURNING id
		`), args...)
		if err := row.Scan(&rec.ID); err != nil {
			return Record{}, fmt.Errorf("%w: insert record: %v", store.ErrWriteFailed, err)
		}
		return rec, nil
	}

	res, err := r.db.Client.ExecContext(ctx, `
		INSERT INTO records (complete_name, sex, designation, division,
			status_pwd, status_senior, status_osy, signature, timestamp_ms)
		VALUES (?,?,?,?,?,?,?,?,?)
	`, args...)
	if err != nil {
		return Record{}, fmt.Errorf("%w: insert record: %v", store.ErrWriteFailed, err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("%w: insert record id: %v", store.ErrWriteFailed, err)
	}
	return rec, nil
}

// ListAll returns every record newest-first. An empty collection yields an
// empty slice, never an error.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Client.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list records: %v", store.ErrReadFailed, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan record: %v", store.ErrReadFailed, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list records: %v", store.ErrReadFailed, err)
	}
	return records, nil
}

// Get returns a single record, or nil when the id is unknown.
func (r *Repository) Get(ctx context.Context, id int64) (*Record, error) {
	row := r.db.Client.QueryRowContext(ctx,
		r.db.Rebind(`SELECT `+recordColumns+` FROM records WHERE id = ?`), id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get record %d: %v", store.ErrReadFailed, id, err)
	}
	return &rec, nil
}

// DeleteOne removes the record with the given id. Deleting an absent id is
// a successful no-op.
func (r *Repository) DeleteOne(ctx context.Context, id int64) error {
	_, err := r.db.Client.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM records WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("%w: delete record %d: %v", store.ErrWriteFailed, id, err)
	}
	return nil
}

// DeleteAll empties the collection unconditionally.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Client.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("%w: delete all records: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Client.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: count records: %v", store.ErrReadFailed, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var pwd, senior, osy int
	err := row.Scan(&rec.ID, &rec.CompleteName, &rec.Sex, &rec.Designation,
		&rec.Division, &pwd, &senior, &osy, &rec.Signature, &rec.Timestamp)
	if err != nil {
		return Record{}, err
	}
	rec.Status = Status{PWD: pwd != 0, Senior: senior != 0, OSY: osy != 0}
	return rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
