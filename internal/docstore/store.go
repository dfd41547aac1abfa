package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("document not found")

// Queryer is the subset of pgx shared by a pool, a connection and a transaction.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is satisfied by *pgxpool.Pool and by pgxmock pools.
type DB interface {
	Queryer
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Document is a raw stored document with its id inside a collection.
type Document struct {
	Id   string
	Body json.RawMessage
}

// Decode unmarshals the document body into dest.
func (d Document) Decode(dest any) error {
	return json.Unmarshal(d.Body, dest)
}

// Store is a keyed collection of JSON documents. Put always overwrites the full document.
type Store interface {
	WithTransaction(ctx context.Context, fn func(store Store) error) error
	Get(ctx context.Context, collection string, id string, dest any) error
	Put(ctx context.Context, collection string, id string, doc any) error
	// List returns all documents of a collection in insertion order.
	List(ctx context.Context, collection string) ([]Document, error)
	Delete(ctx context.Context, collection string, id string) error
	DeleteAll(ctx context.Context, collection string) (int, error)
}

type PgStore struct {
	db DB
	tx pgx.Tx
}

func NewPgStore(db DB) *PgStore {
	return &PgStore{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (s *PgStore) getQueryer() Queryer {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *PgStore) WithTransaction(ctx context.Context, fn func(store Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&PgStore{db: s.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, collection string, id string, dest any) error {
	if s.tx != nil {
		// read-modify-write callers hold the key until commit, even before the row exists
		if err := s.lockKey(ctx, collection, id); err != nil {
			return err
		}
	}
	query := `SELECT body FROM document WHERE collection = $1 AND id = $2`
	var body []byte
	err := s.getQueryer().QueryRow(ctx, query, collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("could not get document %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("could not decode document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PgStore) lockKey(ctx context.Context, collection string, id string) error {
	query := `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`
	if _, err := s.tx.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("could not lock document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PgStore) Put(ctx context.Context, collection string, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode document %s/%s: %w", collection, id, err)
	}
	query := `INSERT INTO document (collection, id, body)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (collection, id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	if _, err := s.getQueryer().Exec(ctx, query, collection, id, body); err != nil {
		return fmt.Errorf("could not put document %s/%s: %w", collection, id, err)
	}
	log.Tracef("document stored: %s/%s", collection, id)
	return nil
}

func (s *PgStore) List(ctx context.Context, collection string) ([]Document, error) {
	query := `SELECT id, body FROM document WHERE collection = $1 ORDER BY seq`
	rows, err := s.getQueryer().Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("could not list collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		docs = append(docs, Document{Id: id, Body: json.RawMessage(body)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *PgStore) Delete(ctx context.Context, collection string, id string) error {
	query := `DELETE FROM document WHERE collection = $1 AND id = $2`
	result, err := s.getQueryer().Exec(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("could not delete document %s/%s: %w", collection, id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	query := `DELETE FROM document WHERE collection = $1`
	result, err := s.getQueryer().Exec(ctx, query, collection)
	if err != nil {
		return 0, fmt.Errorf("could not clear collection %s: %w", collection, err)
	}
	return int(result.RowsAffected()), nil
}
