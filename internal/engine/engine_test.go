package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabengine/internal/progress"
	"github.com/example/vocabengine/internal/review"
	"github.com/example/vocabengine/internal/storage"
	"github.com/example/vocabengine/pkg/models"
)

// brokenRepository fails every operation, simulating an unavailable medium
type brokenRepository struct{}

func (brokenRepository) LoadProgress() (models.LearnerProgress, error) {
	return models.NewLearnerProgress(), storage.ErrStorageUnavailable
}
func (brokenRepository) SaveProgress(models.LearnerProgress) error {
	return storage.ErrStorageUnavailable
}
func (brokenRepository) LoadSettings() (models.Settings, error) {
	return models.DefaultSettings(), storage.ErrStorageUnavailable
}
func (brokenRepository) SaveSettings(models.Settings) error {
	return storage.ErrStorageUnavailable
}
func (brokenRepository) ResetProgress() error {
	return storage.ErrStorageUnavailable
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(storage.NewMemoryRepository(), opts...)
}

func TestEngine_RecordCorrectPersists(t *testing.T) {
	e := newTestEngine(t)

	e.RecordCorrect("w1")
	e.RecordCorrect("w1")
	e.RecordCorrect("w1")

	p := e.GetProgress()
	assert.True(t, p.IsLearned("w1"))
	assert.Equal(t, 3, p.WordStats["w1"].CorrectCount)
	assert.Equal(t, 1, p.WordStats["w1"].Difficulty)
}

func TestEngine_RecordIncorrectFlagsWeak(t *testing.T) {
	e := newTestEngine(t)

	e.RecordIncorrect("w1")

	p := e.GetProgress()
	assert.True(t, p.IsWeak("w1"))
	assert.Equal(t, 1, p.WordStats["w1"].IncorrectCount)
}

func TestEngine_StorageFailureDoesNotAbortSession(t *testing.T) {
	e := New(brokenRepository{})

	// Must not panic or surface an error; the write is dropped
	e.RecordCorrect("w1")
	e.RecordSession("catA", 5)
	e.ResetProgress()

	p := e.GetProgress()
	assert.False(t, p.IsLearned("w1"), "state is defaults when storage is down")
	assert.Empty(t, e.EvaluateAchievements(nil))
}

func TestEngine_WordsForReviewUsesSettings(t *testing.T) {
	e := newTestEngine(t)
	e.UpdateSettings(func(s *models.Settings) {
		s.FlashcardCount = 5
		s.GameDifficulty = models.BandEasy
	})
	for i := 0; i < 3; i++ {
		e.MarkLearned(words(10)[i].ID)
	}

	out := e.WordsForReview(words(10), review.Options{})
	assert.Len(t, out, 3, "easy band keeps only the learned words")
	for _, w := range out {
		assert.True(t, e.GetProgress().IsLearned(w.ID))
	}
}

func TestEngine_WordsForReviewExplicitOptionsWin(t *testing.T) {
	e := newTestEngine(t)

	out := e.WordsForReview(words(30), review.Options{SessionSize: 4})
	assert.Len(t, out, 4)
}

func TestEngine_EvaluateAchievementsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	e.RecordSession("catA", 5)

	first := e.EvaluateAchievements(nil)
	require.NotEmpty(t, first)

	second := e.EvaluateAchievements(nil)
	assert.Empty(t, second)
}

func TestEngine_ResetProgressClearsState(t *testing.T) {
	e := newTestEngine(t)
	e.RecordSession("catA", 5)
	require.Equal(t, 5, e.GetProgress().TotalScore)

	e.ResetProgress()
	p := e.GetProgress()
	assert.Zero(t, p.TotalScore)
	assert.Empty(t, p.CategoryProgress)
}

func TestEngine_ExportImportRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	e := newTestEngine(t, WithClock(func() time.Time { return now }))

	e.RecordCorrect("w1")
	e.RecordCorrect("w1")
	e.RecordCorrect("w1")
	e.RecordIncorrect("w2")
	e.RecordSession("catA", 8)
	e.UpdateSettings(func(s *models.Settings) { s.DarkMode = true })

	data, err := e.ExportJSON()
	require.NoError(t, err)

	// Import into a second, empty engine
	e2 := newTestEngine(t)
	require.NoError(t, e2.Import(data))

	p := e2.GetProgress()
	assert.True(t, p.IsLearned("w1"))
	assert.True(t, p.IsWeak("w2"))
	assert.Equal(t, 8, p.TotalScore)
	assert.Equal(t, 1, p.Streak)
	assert.True(t, e2.Settings().DarkMode)
}

func TestEngine_ImportRejectsIncompleteBundle(t *testing.T) {
	e := newTestEngine(t)
	e.RecordSession("catA", 5)

	err := e.Import([]byte(`{"progress": {}}`))
	assert.True(t, errors.Is(err, ErrInvalidBundle))

	err = e.Import([]byte(`not json`))
	assert.True(t, errors.Is(err, ErrInvalidBundle))

	// Current state untouched after the rejected imports
	assert.Equal(t, 5, e.GetProgress().TotalScore)
}

func TestEngine_RecordSessionResultFeedsAchievements(t *testing.T) {
	e := newTestEngine(t)

	e.RecordSessionResult(progress.SessionResult{
		CategoryID: "catA",
		Score:      10,
		Total:      10,
		Mode:       progress.ModeQuiz,
		Duration:   90 * time.Second,
	})

	ids := map[string]bool{}
	for _, a := range e.EvaluateAchievements(nil) {
		ids[a.ID] = true
	}
	assert.True(t, ids["first_steps"])
	assert.True(t, ids["perfect_score"])
	assert.True(t, ids["speed_demon"])
}

func TestEngine_ToggleDarkMode(t *testing.T) {
	e := newTestEngine(t)
	assert.True(t, e.ToggleDarkMode())
	assert.False(t, e.ToggleDarkMode())
}

func words(n int) []models.Word {
	out := make([]models.Word, n)
	for i := range out {
		out[i] = models.Word{ID: fmt.Sprintf("w%d", i)}
	}
	return out
}
