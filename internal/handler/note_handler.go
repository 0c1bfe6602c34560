package handler

import (
	"note-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles note and quiz generation requests
type NoteHandler struct {
	service service.NoteService
}

func NewNoteHandler(service service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// GetNote godoc
// @Summary Get a note
// @Description Returns the note record with its stored quizzes
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /notes/{noteId} [get]
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	note, err := h.service.GetNote(c.UserContext(), c.Params("noteId"))
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// GenerateQuizzes godoc
// @Summary Generate quizzes for a note
// @Description Extracts the note's PDF text, asks the language model for multiple-choice questions and replaces the note's quizzes with them
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {object} dto.GenerateQuizzesResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /notes/{noteId}/generate [get]
func (h *NoteHandler) GenerateQuizzes(c *fiber.Ctx) error {
	resp, err := h.service.GenerateQuizzes(c.UserContext(), c.Params("noteId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// FindAllQuizzes godoc
// @Summary List a note's quizzes
// @Description Returns the stored quizzes of a note in generation order
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /notes/{noteId}/findAllQuizzes [get]
func (h *NoteHandler) FindAllQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.GetQuizzes(c.UserContext(), c.Params("noteId"))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}
