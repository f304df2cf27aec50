package mastery

import (
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// Thresholds of the mastery state machine
const (
	// A word leaves the weak set after this many cumulative correct answers
	WeakExitCorrect = 2
	// A word becomes learned after this many cumulative correct answers
	LearnedCorrect = 3
	// Minimum accuracy for a difficulty promotion on the learn transition
	PromoteAccuracy = 0.8
	// Below this accuracy (with enough attempts) a learned word is demoted
	DemoteAccuracy = 0.5
	// Attempts required before demotion can trigger
	DemoteMinAttempts = 3
	// An incorrect answer schedules the word for re-exposure after this delay
	MissRetryDelay = time.Hour
)

// Policy applies outcome events to a learner's word statistics. It is the
// only component that mutates WordStat records and the learned/weak sets.
type Policy struct {
	// Now is the clock used for review timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewPolicy creates a policy using the wall clock
func NewPolicy() *Policy {
	return &Policy{Now: time.Now}
}

func (p *Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// RecordCorrect applies one correct answer for the word. Two cumulative
// correct answers clear the weak flag; three trigger the learn transition.
func (p *Policy) RecordCorrect(progress *models.LearnerProgress, wordID string) {
	stat := progress.Stat(wordID)
	stat.CorrectCount++

	if stat.CorrectCount >= WeakExitCorrect {
		progress.RemoveWeak(wordID)
	}
	if stat.CorrectCount >= LearnedCorrect && !progress.IsLearned(wordID) {
		p.MarkLearned(progress, wordID)
	}
}

// RecordIncorrect applies one incorrect answer: the word drops a difficulty
// level, is rescheduled for a short-cycle retry, and is flagged weak.
// Sustained poor accuracy revokes learned status.
func (p *Policy) RecordIncorrect(progress *models.LearnerProgress, wordID string) {
	stat := progress.Stat(wordID)
	stat.IncorrectCount++

	if stat.Difficulty > 0 {
		stat.Difficulty--
	}

	now := p.now()
	next := now.Add(MissRetryDelay)
	stat.LastReviewed = &now
	stat.NextReview = &next

	progress.AddWeak(wordID)

	if stat.Attempts() >= DemoteMinAttempts && stat.Accuracy() < DemoteAccuracy {
		progress.RemoveLearned(wordID)
	}
}

// MarkLearned moves the word into the learned set, promotes its difficulty
// when accuracy warrants it, and schedules the next spaced review.
func (p *Policy) MarkLearned(progress *models.LearnerProgress, wordID string) {
	stat := progress.Stat(wordID)
	progress.AddLearned(wordID)

	if stat.Attempts() > 0 && stat.Accuracy() >= PromoteAccuracy && stat.CorrectCount >= LearnedCorrect {
		if stat.Difficulty < models.MaxDifficulty {
			stat.Difficulty++
		}
	}

	now := p.now()
	stat.LastReviewed = &now
	stat.TimesReviewed++

	next := now.Add(ReviewInterval(stat.Difficulty))
	stat.NextReview = &next
}

// ReviewInterval returns the spaced-repetition interval for a difficulty
// level: 2^difficulty days (1, 2, 4, 8, 16, 32 as difficulty climbs 0 to 5).
func ReviewInterval(difficulty int) time.Duration {
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty > models.MaxDifficulty {
		difficulty = models.MaxDifficulty
	}
	days := 1 << uint(difficulty)
	return time.Duration(days) * 24 * time.Hour
}
