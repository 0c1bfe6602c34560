package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"note-quiz/internal/domain"
	"note-quiz/internal/repository/models"
	"note-quiz/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const (
	selectNoteQuery = `SELECT
		id "id",
		title "title",
		url "url",
		created_at "created_at",
		updated_at "updated_at"
	FROM notes
	WHERE id = ?`

	selectNoteQuizzesQuery = `SELECT
		id "id",
		note_id "note_id",
		sort_order "sort_order",
		question "question",
		option_a "option_a",
		option_b "option_b",
		option_c "option_c",
		option_d "option_d",
		correct_answer "correct_answer",
		created_at "created_at"
	FROM note_quizzes
	WHERE note_id = ?
	ORDER BY sort_order`

	insertNoteQuery = `INSERT INTO notes (id, title, url, created_at, updated_at)
		VALUES (:id, :title, :url, :created_at, :updated_at)`

	deleteNoteQuizzesQuery = `DELETE FROM note_quizzes WHERE note_id = ?`

	insertNoteQuizQuery = `INSERT INTO note_quizzes
		(id, note_id, sort_order, question, option_a, option_b, option_c, option_d, correct_answer, created_at)
		VALUES (:id, :note_id, :sort_order, :question, :option_a, :option_b, :option_c, :option_d, :correct_answer, :created_at)`

	touchNoteQuery = `UPDATE notes SET updated_at = ? WHERE id = ?`
)

// NoteDatabaseAdapter implements domain.NoteRepository using sqlx.
type NoteDatabaseAdapter struct {
	db *sqlx.DB
}

func NewNoteDatabaseAdapter(db *sqlx.DB) domain.NoteRepository {
	return &NoteDatabaseAdapter{db: db}
}

func (a *NoteDatabaseAdapter) CreateNote(ctx context.Context, note *domain.Note) error {
	exec := GetExecutor(ctx, a.db)

	now := time.Now()
	model := models.Note{
		ID:        note.ID,
		Title:     util.StringToNullString(note.Title),
		URL:       note.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}

	if _, err := exec.NamedExecContext(ctx, insertNoteQuery, model); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	note.ID = model.ID
	note.CreatedAt = model.CreatedAt
	note.UpdatedAt = model.UpdatedAt
	return nil
}

// GetNoteByID loads the note together with its quizzes.
func (a *NoteDatabaseAdapter) GetNoteByID(ctx context.Context, id string) (*domain.Note, error) {
	exec := GetExecutor(ctx, a.db)

	var model models.Note
	if err := exec.GetContext(ctx, &model, exec.Rebind(selectNoteQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note %s: %w", id, err)
	}

	quizzes, err := a.GetQuizzes(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.Note{
		ID:        model.ID,
		Title:     util.NullStringToString(model.Title),
		URL:       model.URL,
		Quizzes:   quizzes,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// ReplaceQuizzes deletes the note's current quizzes and inserts the new set.
// Callers run it inside WithTransaction so the swap is atomic.
func (a *NoteDatabaseAdapter) ReplaceQuizzes(ctx context.Context, noteID string, quizzes []domain.QuizQuestion) error {
	exec := GetExecutor(ctx, a.db)

	if _, err := exec.ExecContext(ctx, exec.Rebind(deleteNoteQuizzesQuery), noteID); err != nil {
		return fmt.Errorf("failed to delete quizzes of note %s: %w", noteID, err)
	}

	now := time.Now()
	for i, q := range quizzes {
		row := toModelNoteQuiz(noteID, i, q, now)
		if _, err := exec.NamedExecContext(ctx, insertNoteQuizQuery, row); err != nil {
			return fmt.Errorf("failed to insert quiz %d of note %s: %w", i+1, noteID, err)
		}
	}

	if _, err := exec.ExecContext(ctx, exec.Rebind(touchNoteQuery), now, noteID); err != nil {
		return fmt.Errorf("failed to update note %s: %w", noteID, err)
	}
	return nil
}

func (a *NoteDatabaseAdapter) GetQuizzes(ctx context.Context, noteID string) ([]domain.QuizQuestion, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.NoteQuiz
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(selectNoteQuizzesQuery), noteID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes of note %s: %w", noteID, err)
	}

	return lo.Map(rows, func(row models.NoteQuiz, _ int) domain.QuizQuestion {
		return toDomainQuizQuestion(row)
	}), nil
}

func toModelNoteQuiz(noteID string, index int, q domain.QuizQuestion, now time.Time) models.NoteQuiz {
	return models.NoteQuiz{
		ID:            util.NewULID(),
		NoteID:        noteID,
		SortOrder:     index,
		Question:      q.Question,
		OptionA:       q.Options[0],
		OptionB:       q.Options[1],
		OptionC:       q.Options[2],
		OptionD:       q.Options[3],
		CorrectAnswer: string(q.CorrectAnswer),
		CreatedAt:     now,
	}
}

func toDomainQuizQuestion(row models.NoteQuiz) domain.QuizQuestion {
	return domain.QuizQuestion{
		Question:      row.Question,
		Options:       domain.Options{row.OptionA, row.OptionB, row.OptionC, row.OptionD},
		CorrectAnswer: domain.OptionLabel(row.CorrectAnswer),
	}
}
