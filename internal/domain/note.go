package domain

import (
	"context"
	"time"
)

// Note is a document record referencing an uploaded PDF and the quiz
// questions generated from it.
type Note struct {
	ID        string
	Title     string
	URL       string
	Quizzes   []QuizQuestion
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteRepository persists notes and their quiz questions.
type NoteRepository interface {
	// CreateNote assigns an ID when note.ID is empty and sets the timestamps.
	CreateNote(ctx context.Context, note *Note) error
	// GetNoteByID returns nil, nil when the note does not exist.
	GetNoteByID(ctx context.Context, id string) (*Note, error)
	// ReplaceQuizzes swaps the note's quiz set for quizzes, keeping their order.
	ReplaceQuizzes(ctx context.Context, noteID string, quizzes []QuizQuestion) error
	// GetQuizzes returns the persisted quizzes in their stored order.
	GetQuizzes(ctx context.Context, noteID string) ([]QuizQuestion, error)
}

// TextExtractor returns the textual content of the PDF at path.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// QuestionGenerator asks a language model for quiz questions about content
// and returns its raw, unparsed reply.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, content string) (string, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
