package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goalgrid/goalgrid/internal/db"
)

// SQLiteStore implements Store on a single SQLite table. Merge and
// field-path updates are read-modify-write cycles inside a transaction, so
// concurrent writers serialize at the document level.
type SQLiteStore struct {
	conn *sql.DB
	uow  db.UnitOfWork
}

// NewSQLiteStore creates a SQLiteStore backed by the given database.
func NewSQLiteStore(conn *sql.DB) *SQLiteStore {
	return &SQLiteStore{conn: conn, uow: db.NewSQLiteUnitOfWork(conn)}
}

func (s *SQLiteStore) Get(ctx context.Context, collection, docID string) (map[string]any, error) {
	return getDoc(ctx, s.conn, collection, docID)
}

func (s *SQLiteStore) Set(ctx context.Context, collection, docID string, doc map[string]any, merge bool) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		out := doc
		if merge {
			existing, err := getDoc(ctx, tx, collection, docID)
			if err == nil {
				out = mergeMaps(existing, doc)
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
		}
		return putDoc(ctx, tx, collection, docID, out)
	})
}

func (s *SQLiteStore) Update(ctx context.Context, collection, docID string, fields map[string]any) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		existing, err := getDoc(ctx, tx, collection, docID)
		if err != nil {
			return err
		}
		for path, value := range fields {
			setFieldPath(existing, path, value)
		}
		return putDoc(ctx, tx, collection, docID, existing)
	})
}

func (s *SQLiteStore) Stream(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT doc_id FROM documents WHERE collection = ? ORDER BY doc_id`, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: streaming collection %s: %v", ErrUnavailable, collection, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning document id: %v", ErrUnavailable, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: streaming collection %s: %v", ErrUnavailable, collection, err)
	}
	return ids, nil
}

func getDoc(ctx context.Context, conn db.DBTX, collection, docID string) (map[string]any, error) {
	row := conn.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND doc_id = ?`, collection, docID)

	var body string
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %s/%s: %w", collection, docID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: reading document %s/%s: %v", ErrUnavailable, collection, docID, err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding document %s/%s: %v", ErrUnavailable, collection, docID, err)
	}
	return doc, nil
}

func putDoc(ctx context.Context, conn db.DBTX, collection, docID string, doc map[string]any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %s/%s: %w", collection, docID, err)
	}
	_, err = conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (collection, doc_id, body, updated_at) VALUES (?, ?, ?, ?)`,
		collection, docID, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: writing document %s/%s: %v", ErrUnavailable, collection, docID, err)
	}
	return nil
}
