package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

var errConnReset = errors.New("connection reset")

// fakeDB records the last statement and answers with canned results.
type fakeDB struct {
	sql  string
	args []any

	tag     pgconn.CommandTag
	execErr error
	row     fakeRow
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return f.tag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	return nil, errConnReset
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql, f.args = sql, args
	return f.row
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

func TestUserRepository_CreateMapsUniqueViolation(t *testing.T) {
	db := &fakeDB{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
	repo := NewUserRepository(db)

	email := "a@example.com"
	user := &entities.User{ID: uuid.New(), Email: &email, Username: "reader"}

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
	assert.Equal(t, user.ID, db.args[0])

	db.execErr = errConnReset
	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, errConnReset)
	assert.NotErrorIs(t, err, ErrEmailAlreadyTaken)
}

func TestUserRepository_UpdateUsernameMissingUser(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewUserRepository(db)

	err := repo.UpdateUsername(context.Background(), uuid.New(), "hafiz")
	assert.ErrorIs(t, err, ErrUserNotFound)

	db.tag = pgconn.NewCommandTag("UPDATE 1")
	assert.NoError(t, repo.UpdateUsername(context.Background(), uuid.New(), "hafiz"))
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	repo := NewUserRepository(&fakeDB{})

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNoteRepository_UpsertTargetsAyahKey(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = 17
		*dest[1].(*time.Time) = created
		return nil
	}}}
	repo := NewNoteRepository(db)

	userID := uuid.New()
	note := entities.NewNote(userID, 2, 255, "Ayat al-Kursi")
	require.NoError(t, repo.Upsert(context.Background(), note))

	assert.Contains(t, db.sql, "ON CONFLICT (user_id, surah_number, ayah_number) DO UPDATE")
	assert.Equal(t, []any{userID, 2, 255, "Ayat al-Kursi"}, db.args[:4])
	assert.Equal(t, int64(17), note.ID)
	assert.Equal(t, created, note.CreatedAt)
}

func TestNoteRepository_GetAndDeleteNotFound(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewNoteRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.New(), 1, 1)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	err = repo.Delete(ctx, uuid.New(), 1, 1)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	db.tag = pgconn.NewCommandTag("DELETE 1")
	assert.NoError(t, repo.Delete(ctx, uuid.New(), 1, 1))

	_, err = repo.ListByUser(ctx, uuid.New())
	assert.ErrorIs(t, err, errConnReset)
}

func TestBookmarkRepository_AddIgnoresDuplicates(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("INSERT 0 0")}
	repo := NewBookmarkRepository(db)

	b := &entities.Bookmark{UserID: uuid.New(), SurahNumber: 1, AyahNumber: 5, CreatedAt: time.Now()}
	require.NoError(t, repo.Add(context.Background(), b))
	assert.Contains(t, db.sql, "ON CONFLICT (user_id, surah_number, ayah_number) DO NOTHING")

	db.execErr = errConnReset
	assert.ErrorIs(t, repo.Add(context.Background(), b), errConnReset)
}

func TestBookmarkRepository_RemoveReportsExistence(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	removed, err := repo.Remove(ctx, uuid.New(), 1, 5)
	require.NoError(t, err)
	assert.False(t, removed)

	db.tag = pgconn.NewCommandTag("DELETE 1")
	removed, err = repo.Remove(ctx, uuid.New(), 1, 5)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestSettingsRepository_CreateKeepsExisting(t *testing.T) {
	db := &fakeDB{}
	repo := NewSettingsRepository(db)
	userID := uuid.New()

	require.NoError(t, repo.Create(context.Background(), userID))
	assert.Contains(t, db.sql, "ON CONFLICT (user_id) DO NOTHING")
	assert.Equal(t, []any{userID, entities.DefaultReciter, entities.DefaultEdition}, db.args)

	_, err := repo.GetByUserID(context.Background(), userID)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}
