package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var userRowColumns = []string{"id", "email", "hashed_password", "created_at"}

func TestUserStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users\s*\(email,\s*hashed_password\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at\s*$`).
		WithArgs("a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	u := &domain.User{Email: "a@x.com", HashedPassword: "hash"}
	require.NoError(t, s.Create(context.Background(), u))

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("a@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	err := s.Create(context.Background(), &domain.User{Email: "a@x.com", HashedPassword: "hash"})

	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_CreateRequiresHash(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	err := s.Create(context.Background(), &domain.User{Email: "a@x.com", Password: "pw1"})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, email, hashed_password, created_at FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(int64(7), "a@x.com", "hash", now))

	u, err := s.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "hash", u.HashedPassword)
	assert.Empty(t, u.Password)
}

func TestUserStore_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	u, err := s.GetByID(context.Background(), 99)

	assert.Nil(t, u)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_GetByEmailNormalizes(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(int64(1), "a@x.com", "hash", time.Now()))

	u, err := s.GetByEmail(context.Background(), " A@X.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestUserStore_GetByEmailDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`FROM users WHERE email = \$1`).WillReturnError(boom)

	_, err := s.GetByEmail(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}

func TestUserStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	now := time.Now()

	listQuery := `FROM users ORDER BY id LIMIT \$1 OFFSET \$2`
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "a@x.com", "h1", now).
			AddRow(int64(2), "b@x.com", "h2", now)
	}
	mock.ExpectQuery(listQuery).WithArgs(2, 0).WillReturnRows(rows())
	mock.ExpectQuery(listQuery).WithArgs(2, 0).WillReturnRows(rows())

	seq := s.List(context.Background(), 0, 2)

	first, err := store.Collect(seq)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "a@x.com", first[0].Email)
	assert.Equal(t, "b@x.com", first[1].Email)

	// Ranging again re-runs the query.
	second, err := store.Collect(seq)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_ListDefaultsAndEarlyStop(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	now := time.Now()

	mock.ExpectQuery(`FROM users ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(DefaultListLimit, 0).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "a@x.com", "h1", now).
			AddRow(int64(2), "b@x.com", "h2", now)).
		RowsWillBeClosed()

	count := 0
	for u, err := range s.List(context.Background(), -5, -1) {
		require.NoError(t, err)
		require.NotNil(t, u)
		count++
		break
	}

	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_ListQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	boom := errors.New("db down")

	mock.ExpectQuery(`FROM users ORDER BY id`).WillReturnError(boom)

	users, err := store.Collect(s.List(context.Background(), 0, 10))

	assert.Nil(t, users)
	assert.ErrorIs(t, err, boom)
}

func TestFactoryBindsStores(t *testing.T) {
	db, _ := newMockDB(t)
	f := NewFactory(nil)

	assert.IsType(t, &PostgresUserStore{}, f.Users(db))
	assert.IsType(t, &PostgresItemStore{}, f.Items(db))
}
