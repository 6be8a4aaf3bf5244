package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)
	assert.Equal(t, BackendPostgres, m.Backend())

	var _ users.Repository = m.Users()
	var _ events.Repository = m.Events()
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &events.PostgresRepository{}, m.Events())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	require.EqualError(t, m.RunMigrations(context.Background()), "boom")
}

func TestPostgresPingAndClose(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("conn reset"))
	mock.ExpectClose()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.Ping(context.Background()))
	require.EqualError(t, m.Ping(context.Background()), "conn reset")
	require.NoError(t, m.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
