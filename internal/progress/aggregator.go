package progress

import (
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// SessionMode identifies which practice mode produced a session result
type SessionMode string

const (
	ModeFlashcard     SessionMode = "flashcard"
	ModeQuiz          SessionMode = "quiz"
	ModeMatching      SessionMode = "matching"
	ModeTyping        SessionMode = "typing"
	ModePronunciation SessionMode = "pronunciation"
)

// SessionResult carries everything a game mode reports at session end.
// Only CategoryID and Score are required; the rest enriches statistics.
type SessionResult struct {
	CategoryID string
	Score      int
	Total      int // questions asked, 0 if the mode does not count them
	Mode       SessionMode
	Duration   time.Duration
}

// Aggregator folds session results into per-category totals, the daily
// streak and the aggregate learner statistics.
type Aggregator struct {
	// Now is the clock used for streak and lastPlayed bookkeeping.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewAggregator creates an aggregator using the wall clock
func NewAggregator() *Aggregator {
	return &Aggregator{Now: time.Now}
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// RecordSession adds one completed session's score to the category and the
// learner totals.
func (a *Aggregator) RecordSession(p *models.LearnerProgress, categoryID string, score int) {
	a.RecordResult(p, SessionResult{CategoryID: categoryID, Score: score})
}

// RecordResult is RecordSession plus the optional statistics a game mode
// can report: accuracy, practice time and the mode played.
func (a *Aggregator) RecordResult(p *models.LearnerProgress, res SessionResult) {
	now := a.now()

	cp, ok := p.CategoryProgress[res.CategoryID]
	if !ok {
		cp = &models.CategoryProgress{}
		if p.CategoryProgress == nil {
			p.CategoryProgress = map[string]*models.CategoryProgress{}
		}
		p.CategoryProgress[res.CategoryID] = cp
	}
	cp.Score += res.Score
	cp.TotalAttempts++
	cp.LastPlayed = now
	p.TotalScore += res.Score

	// The streak transition must look at the previous lastPlayed
	a.updateStreak(p, now)
	p.LastPlayed = &now

	a.updateStats(p, res, now)
}

func (a *Aggregator) updateStreak(p *models.LearnerProgress, now time.Time) {
	switch {
	case p.LastPlayed == nil:
		p.Streak = 1
	case sameDay(*p.LastPlayed, now):
		// Already played today, streak unchanged
	case sameDay(*p.LastPlayed, now.AddDate(0, 0, -1)):
		p.Streak++
	default:
		p.Streak = 1
	}
}

func (a *Aggregator) updateStats(p *models.LearnerProgress, res SessionResult, now time.Time) {
	stats := &p.Stats
	stats.TotalSessions++
	stats.LastSessionDate = &now

	if res.Total > 0 {
		pct := float64(res.Score) / float64(res.Total) * 100
		stats.AccuracyHistory = append(stats.AccuracyHistory, pct)
	}
	if res.Duration > 0 {
		secs := int(res.Duration / time.Second)
		stats.TotalPracticeTime += secs
		if stats.FastestSessionSecs == 0 || secs < stats.FastestSessionSecs {
			stats.FastestSessionSecs = secs
		}
	}
	switch res.Mode {
	case ModeFlashcard:
		stats.FlashcardSessions++
	case ModeQuiz:
		stats.QuizSessions++
	}

	RefreshHistogram(p)
}

// RefreshHistogram recomputes the words-by-difficulty histogram from the
// current word statistics.
func RefreshHistogram(p *models.LearnerProgress) {
	h := make(map[int]int, models.MaxDifficulty+1)
	for d := 0; d <= models.MaxDifficulty; d++ {
		h[d] = 0
	}
	for _, stat := range p.WordStats {
		if stat == nil {
			continue
		}
		d := stat.Difficulty
		if d < 0 {
			d = 0
		}
		if d > models.MaxDifficulty {
			d = models.MaxDifficulty
		}
		h[d]++
	}
	p.Stats.WordsByDifficulty = h
}

// sameDay compares two instants by local calendar date, the same boundary
// used for "today" and "yesterday" in the streak rule.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
