package models

import (
	"database/sql"
	"time"
)

// Note represents the notes table. Title is nullable because Oracle stores
// an empty string as NULL.
type Note struct {
	ID        string         `db:"id"`
	Title     sql.NullString `db:"title"`
	URL       string         `db:"url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// NoteQuiz is one row of note_quizzes; SortOrder keeps the generated order.
type NoteQuiz struct {
	ID            string    `db:"id"`
	NoteID        string    `db:"note_id"`
	SortOrder     int       `db:"sort_order"`
	Question      string    `db:"question"`
	OptionA       string    `db:"option_a"`
	OptionB       string    `db:"option_b"`
	OptionC       string    `db:"option_c"`
	OptionD       string    `db:"option_d"`
	CorrectAnswer string    `db:"correct_answer"`
	CreatedAt     time.Time `db:"created_at"`
}
