package docstore

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name string `json:"name"`
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PgStore) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPgStore(mock)
}

func TestPgStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes stored body", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("SELECT body FROM document").
			WithArgs("team_members", "m1").
			WillReturnRows(pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"name":"Ann"}`)))

		var doc testDoc
		err := store.Get(ctx, "team_members", "m1", &doc)

		require.NoError(t, err)
		assert.Equal(t, "Ann", doc.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing document", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("SELECT body FROM document").
			WithArgs("team_members", "missing").
			WillReturnRows(pgxmock.NewRows([]string{"body"}))

		var doc testDoc
		err := store.Get(ctx, "team_members", "missing", &doc)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wraps query errors", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("SELECT body FROM document").
			WithArgs("calendar", "m1").
			WillReturnError(errors.New("connection reset"))

		var doc testDoc
		err := store.Get(ctx, "calendar", "m1", &doc)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestPgStore_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts the full document", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("INSERT INTO document").
			WithArgs("project", "info", []byte(`{"name":"Agent PM"}`)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := store.Put(ctx, "project", "info", testDoc{Name: "Agent PM"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when exec fails", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("INSERT INTO document").
			WithArgs("project", "info", pgxmock.AnyArg()).
			WillReturnError(errors.New("disk full"))

		err := store.Put(ctx, "project", "info", testDoc{Name: "Agent PM"})

		assert.Error(t, err)
	})
}

func TestPgStore_List(t *testing.T) {
	ctx := context.Background()
	mock, store := newMockStore(t)
	mock.ExpectQuery("SELECT id, body FROM document").
		WithArgs("team_members").
		WillReturnRows(pgxmock.NewRows([]string{"id", "body"}).
			AddRow("m2", []byte(`{"name":"Bob"}`)).
			AddRow("m1", []byte(`{"name":"Ann"}`)))

	docs, err := store.List(ctx, "team_members")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "m2", docs[0].Id)
	assert.Equal(t, "m1", docs[1].Id)
	var second testDoc
	require.NoError(t, docs[1].Decode(&second))
	assert.Equal(t, "Ann", second.Name)
}

func TestPgStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing document", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("DELETE FROM document").
			WithArgs("chats/anonymous", "42").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, store.Delete(ctx, "chats/anonymous", "42"))
	})

	t.Run("missing document", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("DELETE FROM document").
			WithArgs("chats/anonymous", "42").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, store.Delete(ctx, "chats/anonymous", "42"), ErrNotFound)
	})

	t.Run("delete all returns count", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("DELETE FROM document").
			WithArgs("chats/anonymous").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		count, err := store.DeleteAll(ctx, "chats/anonymous")

		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestPgStore_WithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("locks key on read and commits", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs("calendar", "m1").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery("SELECT body FROM document").
			WithArgs("calendar", "m1").
			WillReturnRows(pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"name":"old"}`)))
		mock.ExpectExec("INSERT INTO document").
			WithArgs("calendar", "m1", []byte(`{"name":"new"}`)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := store.WithTransaction(ctx, func(tx Store) error {
			var doc testDoc
			if err := tx.Get(ctx, "calendar", "m1", &doc); err != nil {
				return err
			}
			return tx.Put(ctx, "calendar", "m1", testDoc{Name: "new"})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("locks key of a missing document", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs("calendar", "m2").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery("SELECT body FROM document").
			WithArgs("calendar", "m2").
			WillReturnRows(pgxmock.NewRows([]string{"body"}))
		mock.ExpectRollback()

		err := store.WithTransaction(ctx, func(tx Store) error {
			var doc testDoc
			return tx.Get(ctx, "calendar", "m2", &doc)
		})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock failure", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs("calendar", "m1").
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err := store.WithTransaction(ctx, func(tx Store) error {
			var doc testDoc
			return tx.Get(ctx, "calendar", "m1", &doc)
		})

		assert.ErrorContains(t, err, "could not lock document calendar/m1")
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		failure := errors.New("boom")
		err := store.WithTransaction(ctx, func(tx Store) error {
			return failure
		})

		assert.ErrorIs(t, err, failure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectBegin().WillReturnError(errors.New("begin error"))

		err := store.WithTransaction(ctx, func(tx Store) error { return nil })

		assert.ErrorContains(t, err, "begin transaction")
	})
}

func TestStoreStub(t *testing.T) {
	ctx := context.Background()
	stub := NewStoreStub()

	require.NoError(t, stub.Put(ctx, "team_members", "b", testDoc{Name: "Bob"}))
	require.NoError(t, stub.Put(ctx, "team_members", "a", testDoc{Name: "Ann"}))
	require.NoError(t, stub.Put(ctx, "team_members", "b", testDoc{Name: "Bobby"}))

	docs, err := stub.List(ctx, "team_members")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].Id, "overwrite keeps insertion position")

	err = stub.WithTransaction(ctx, func(tx Store) error {
		_ = tx.Put(ctx, "team_members", "c", testDoc{Name: "Cid"})
		return errors.New("abort")
	})
	require.Error(t, err)
	docs, _ = stub.List(ctx, "team_members")
	assert.Len(t, docs, 2, "failed transaction is rolled back")
}
