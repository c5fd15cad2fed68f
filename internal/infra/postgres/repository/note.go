package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteRepository provides access to ayah notes.
type NoteRepository struct {
	db postgres.DBTX
}

func NewNoteRepository(db postgres.DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

// Get retrieves the note of a user for an ayah.
func (r *NoteRepository) Get(ctx context.Context, userID uuid.UUID, surah, ayah int) (*entities.Note, error) {
	query := `
		SELECT id, user_id, surah_number, ayah_number, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND surah_number = $2 AND ayah_number = $3
	`

	note, err := scanNote(r.db.QueryRow(ctx, query, userID, surah, ayah))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// Upsert inserts the note or replaces the content of the existing one.
func (r *NoteRepository) Upsert(ctx context.Context, note *entities.Note) error {
	query := `
		INSERT INTO notes (user_id, surah_number, ayah_number, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, surah_number, ayah_number) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		note.UserID,
		note.SurahNumber,
		note.AyahNumber,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}

	return nil
}

// Delete removes the note of a user for an ayah.
func (r *NoteRepository) Delete(ctx context.Context, userID uuid.UUID, surah, ayah int) error {
	query := `DELETE FROM notes WHERE user_id = $1 AND surah_number = $2 AND ayah_number = $3`

	tag, err := r.db.Exec(ctx, query, userID, surah, ayah)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ListByUser returns all notes of a user, most recently edited first.
func (r *NoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	query := `
		SELECT id, user_id, surah_number, ayah_number, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*entities.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var n entities.Note
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.SurahNumber,
		&n.AyahNumber,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
