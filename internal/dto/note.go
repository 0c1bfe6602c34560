package dto

import (
	"time"

	"note-quiz/internal/domain"

	"github.com/samber/lo"
)

// QuizQuestionResponse is one multiple-choice question.
// @Description Multiple-choice question with options keyed a-d
type QuizQuestionResponse struct {
	Question      string            `json:"question" example:"What is 2+2?"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer" example:"b"`
}

// NoteResponse represents a note in the API response
// @Description Note record with its generated quizzes
type NoteResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	URL       string                 `json:"url"`
	Quizzes   []QuizQuestionResponse `json:"quizzes"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// GenerateQuizzesResponse wraps freshly generated quizzes.
type GenerateQuizzesResponse struct {
	Quizzes []QuizQuestionResponse `json:"quizzes"`
}

func ToQuizQuestionResponse(q domain.QuizQuestion) QuizQuestionResponse {
	options := make(map[string]string, domain.OptionCount)
	for i, label := range domain.OptionLabels {
		options[string(label)] = q.Options[i]
	}
	return QuizQuestionResponse{
		Question:      q.Question,
		Options:       options,
		CorrectAnswer: string(q.CorrectAnswer),
	}
}

func ToQuizQuestionResponses(quizzes []domain.QuizQuestion) []QuizQuestionResponse {
	return lo.Map(quizzes, func(q domain.QuizQuestion, _ int) QuizQuestionResponse {
		return ToQuizQuestionResponse(q)
	})
}

func ToNoteResponse(n *domain.Note) *NoteResponse {
	return &NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		URL:       n.URL,
		Quizzes:   ToQuizQuestionResponses(n.Quizzes),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
