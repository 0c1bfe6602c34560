package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"note-quiz/internal/cache"
	"note-quiz/internal/config"
	"note-quiz/internal/domain"
	"note-quiz/internal/dto"
	"note-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NoteService exposes notes and runs the quiz generation pipeline.
type NoteService interface {
	GetNote(ctx context.Context, noteID string) (*dto.NoteResponse, error)
	// GenerateQuizzes extracts the note's PDF text, asks the model for
	// questions, parses them and replaces the note's stored quizzes.
	GenerateQuizzes(ctx context.Context, noteID string) (*dto.GenerateQuizzesResponse, error)
	GetQuizzes(ctx context.Context, noteID string) ([]dto.QuizQuestionResponse, error)
}

type noteService struct {
	repo      domain.NoteRepository
	txManager domain.TransactionManager
	extractor domain.TextExtractor
	generator domain.QuestionGenerator
	cache     domain.Cache // nil disables caching
	cfg       *config.Config
	inflight  singleflight.Group
}

func NewNoteService(
	repo domain.NoteRepository,
	txManager domain.TransactionManager,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	cache domain.Cache,
	cfg *config.Config,
) NoteService {
	return &noteService{
		repo:      repo,
		txManager: txManager,
		extractor: extractor,
		generator: generator,
		cache:     cache,
		cfg:       cfg,
	}
}

func (s *noteService) GetNote(ctx context.Context, noteID string) (*dto.NoteResponse, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return dto.ToNoteResponse(note), nil
}

// GenerateQuizzes coalesces concurrent calls for the same note into one run.
func (s *noteService) GenerateQuizzes(ctx context.Context, noteID string) (*dto.GenerateQuizzesResponse, error) {
	v, err, shared := s.inflight.Do(noteID, func() (interface{}, error) {
		return s.generate(ctx, noteID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Joined in-flight quiz generation", zap.String("note_id", noteID))
	}

	return &dto.GenerateQuizzesResponse{
		Quizzes: dto.ToQuizQuestionResponses(v.([]domain.QuizQuestion)),
	}, nil
}

func (s *noteService) generate(ctx context.Context, noteID string) ([]domain.QuizQuestion, error) {
	l := logger.Get().With(zap.String("note_id", noteID))

	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	path := resolveNotePath(s.cfg.Notes.BaseDir, note.URL)
	l.Info("Extracting note content", zap.String("path", path))
	content, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, asDomainError(err, "Failed to extract note content")
	}

	l.Info("Generating questions", zap.Int("content_chars", len(content)))
	raw, err := s.generator.GenerateQuestions(ctx, content)
	if err != nil {
		return nil, asDomainError(err, "Failed to generate questions")
	}
	l.Debug("Raw model output", zap.String("raw", raw))

	quizzes, err := domain.ParseQuizResponse(raw)
	if err != nil {
		return nil, err
	}
	if want := s.cfg.Quiz.QuestionCount; want > 0 && len(quizzes) != want {
		return nil, domain.NewParseError(fmt.Sprintf("expected %d questions, got %d", want, len(quizzes))).
			WithContext("expected", want).
			WithContext("got", len(quizzes))
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceQuizzes(txCtx, noteID, quizzes)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quizzes", err)
	}
	l.Info("Quizzes saved", zap.Int("count", len(quizzes)))

	s.cacheQuizzes(ctx, noteID, quizzes)
	return quizzes, nil
}

// GetQuizzes reads through the cache; the database stays authoritative. A miss
// only fills an absent key, so a snapshot read before a concurrent generate
// commits cannot replace the set that generate cached.
func (s *noteService) GetQuizzes(ctx context.Context, noteID string) ([]dto.QuizQuestionResponse, error) {
	if quizzes, ok := s.cachedQuizzes(ctx, noteID); ok {
		return dto.ToQuizQuestionResponses(quizzes), nil
	}

	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	s.fillQuizCache(ctx, noteID, note.Quizzes)
	return dto.ToQuizQuestionResponses(note.Quizzes), nil
}

func (s *noteService) findNote(ctx context.Context, noteID string) (*domain.Note, error) {
	note, err := s.repo.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get note", err)
	}
	if note == nil {
		return nil, domain.NewNoteNotFoundError(noteID)
	}
	return note, nil
}

func (s *noteService) cachedQuizzes(ctx context.Context, noteID string) ([]domain.QuizQuestion, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := cache.NoteQuizzesKey(noteID)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var quizzes []domain.QuizQuestion
	if err := json.Unmarshal([]byte(raw), &quizzes); err != nil {
		logger.Get().Warn("Discarding undecodable quiz cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return quizzes, true
}

// cacheQuizzes overwrites the entry after a committed generate. If the write
// fails the key is dropped so a stale entry cannot outlive the new set.
func (s *noteService) cacheQuizzes(ctx context.Context, noteID string, quizzes []domain.QuizQuestion) {
	if s.cache == nil {
		return
	}

	key, payload, ok := encodeQuizzes(noteID, quizzes)
	if !ok {
		_ = s.cache.Delete(ctx, key)
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.Redis.QuizTTL); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Quiz cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// fillQuizCache stores a database snapshot only if no entry exists.
func (s *noteService) fillQuizCache(ctx context.Context, noteID string, quizzes []domain.QuizQuestion) {
	if s.cache == nil {
		return
	}

	key, payload, ok := encodeQuizzes(noteID, quizzes)
	if !ok {
		return
	}
	if _, err := s.cache.SetIfAbsent(ctx, key, payload, s.cfg.Redis.QuizTTL); err != nil {
		logger.Get().Warn("Quiz cache fill failed", zap.String("key", key), zap.Error(err))
	}
}

func encodeQuizzes(noteID string, quizzes []domain.QuizQuestion) (string, string, bool) {
	key := cache.NoteQuizzesKey(noteID)
	if quizzes == nil {
		quizzes = []domain.QuizQuestion{}
	}
	payload, err := json.Marshal(quizzes)
	if err != nil {
		logger.Get().Warn("Failed to encode quizzes for cache", zap.String("key", key), zap.Error(err))
		return key, "", false
	}
	return key, string(payload), true
}

// resolveNotePath resolves a note url against baseDir unless it is absolute.
func resolveNotePath(baseDir, url string) string {
	if filepath.IsAbs(url) {
		return filepath.Clean(url)
	}
	return filepath.Join(baseDir, url)
}

// asDomainError keeps domain errors from collaborators intact and wraps
// anything else as an internal error.
func asDomainError(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}
