package engine

import (
	"log/slog"
	"time"

	"github.com/example/vocabengine/internal/achievements"
	"github.com/example/vocabengine/internal/mastery"
	"github.com/example/vocabengine/internal/progress"
	"github.com/example/vocabengine/internal/review"
	"github.com/example/vocabengine/internal/storage"
	"github.com/example/vocabengine/pkg/models"
)

// Engine is the progress and mastery engine behind the learning UI. Game
// modes report outcomes and session scores to it and ask it which words to
// practice next.
//
// Every mutating operation is a full read-modify-write of the persisted
// progress document. Storage failures never abort a learning session: the
// operation proceeds against defaults and the write is dropped and logged.
// Operations must not be re-entered concurrently for the same repository.
type Engine struct {
	repo       storage.Repository
	policy     *mastery.Policy
	scheduler  *review.Scheduler
	aggregator *progress.Aggregator
	evaluator  *achievements.Evaluator
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for absorbed errors
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock fixes the engine's clock, for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
		e.policy.Now = now
		e.scheduler.Now = now
		e.aggregator.Now = now
		e.evaluator.Now = now
	}
}

// WithRegistry replaces the default achievement registry
func WithRegistry(registry achievements.Registry) Option {
	return func(e *Engine) {
		e.evaluator.Registry = registry
	}
}

// WithSessionSize overrides the default review session size
func WithSessionSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.scheduler.SessionSize = size
		}
	}
}

// New creates an engine over the given repository
func New(repo storage.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:       repo,
		policy:     mastery.NewPolicy(),
		scheduler:  review.NewScheduler(),
		aggregator: progress.NewAggregator(),
		evaluator:  achievements.NewEvaluator(achievements.DefaultRegistry()),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluator.Logger = e.logger
	return e
}

// GetProgress returns the current learner progress. On storage failure it
// returns defaults and the session continues without durability.
func (e *Engine) GetProgress() models.LearnerProgress {
	return e.loadProgress()
}

// RecordCorrect applies one correct answer for the word
func (e *Engine) RecordCorrect(wordID string) {
	e.mutate(func(p *models.LearnerProgress) {
		e.policy.RecordCorrect(p, wordID)
	})
}

// RecordIncorrect applies one incorrect answer for the word
func (e *Engine) RecordIncorrect(wordID string) {
	e.mutate(func(p *models.LearnerProgress) {
		e.policy.RecordIncorrect(p, wordID)
	})
}

// MarkLearned marks the word learned outright and schedules its next review
func (e *Engine) MarkLearned(wordID string) {
	e.mutate(func(p *models.LearnerProgress) {
		e.policy.MarkLearned(p, wordID)
	})
}

// WordsForReview selects and orders the words for one practice session.
// When opts leaves the band or session size unset, the learner's settings
// (game difficulty, flashcard count) fill them in.
func (e *Engine) WordsForReview(candidates []models.Word, opts review.Options) []models.Word {
	settings := e.Settings()
	if opts.Band == "" {
		opts.Band = settings.GameDifficulty
	}
	if opts.SessionSize <= 0 {
		opts.SessionSize = settings.FlashcardCount
	}
	p := e.loadProgress()
	return e.scheduler.Select(&p, candidates, opts)
}

// RecordSession folds one completed session's score into the category and
// learner totals and advances the daily streak.
func (e *Engine) RecordSession(categoryID string, score int) {
	e.mutate(func(p *models.LearnerProgress) {
		e.aggregator.RecordSession(p, categoryID, score)
	})
}

// RecordSessionResult is RecordSession plus the optional statistics a game
// mode can report (accuracy, duration, mode).
func (e *Engine) RecordSessionResult(res progress.SessionResult) {
	e.mutate(func(p *models.LearnerProgress) {
		e.aggregator.RecordResult(p, res)
	})
}

// EvaluateAchievements checks the registry against current progress and
// returns any newly unlocked achievements. Evaluation is idempotent: a
// second call with unchanged progress returns nothing.
func (e *Engine) EvaluateAchievements(categories []models.Category) []achievements.Achievement {
	p := e.loadProgress()
	unlocked := e.evaluator.Evaluate(&p, categories)
	if len(unlocked) > 0 {
		e.saveProgress(p)
	}
	return unlocked
}

// ResetProgress clears the persisted progress back to defaults. Irreversible.
func (e *Engine) ResetProgress() {
	if err := e.repo.ResetProgress(); err != nil {
		e.logger.Error("reset progress failed", slog.Any("error", err))
	}
}

// Settings returns the learner's settings, defaulted on storage failure
func (e *Engine) Settings() models.Settings {
	s, err := e.repo.LoadSettings()
	if err != nil {
		e.logger.Warn("load settings failed, using defaults", slog.Any("error", err))
	}
	return s
}

// UpdateSettings applies fn to the current settings and persists the result
func (e *Engine) UpdateSettings(fn func(*models.Settings)) models.Settings {
	s := e.Settings()
	fn(&s)
	s.Clamp()
	if err := e.repo.SaveSettings(s); err != nil {
		e.logger.Error("save settings failed, update dropped", slog.Any("error", err))
	}
	return s
}

// ToggleDarkMode flips the dark mode setting and returns the new value
func (e *Engine) ToggleDarkMode() bool {
	s := e.UpdateSettings(func(s *models.Settings) {
		s.DarkMode = !s.DarkMode
	})
	return s.DarkMode
}

func (e *Engine) loadProgress() models.LearnerProgress {
	p, err := e.repo.LoadProgress()
	if err != nil {
		e.logger.Warn("load progress failed, using defaults", slog.Any("error", err))
	}
	return p
}

func (e *Engine) saveProgress(p models.LearnerProgress) {
	if err := e.repo.SaveProgress(p); err != nil {
		e.logger.Error("save progress failed, update dropped", slog.Any("error", err))
	}
}

// mutate runs one read-modify-write cycle against the repository
func (e *Engine) mutate(fn func(*models.LearnerProgress)) {
	p := e.loadProgress()
	fn(&p)
	e.saveProgress(p)
}
