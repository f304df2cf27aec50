package models

import "time"

// MaxDifficulty is the top of the per-word difficulty scale.
// 0 means new/hardest, 5 means mastered.
const MaxDifficulty = 5

// WordStat tracks a learner's answer history and review schedule for one word
type WordStat struct {
	CorrectCount   int        `json:"correct"`
	IncorrectCount int        `json:"incorrect"`
	Difficulty     int        `json:"difficulty"` // 0-5, drives the review interval
	LastReviewed   *time.Time `json:"lastReviewed"`
	NextReview     *time.Time `json:"nextReview"`
	TimesReviewed  int        `json:"timesReviewed"`
}

// Attempts returns the total number of recorded answers for the word
func (s *WordStat) Attempts() int {
	return s.CorrectCount + s.IncorrectCount
}

// Accuracy returns the fraction of correct answers, or 0 with no attempts
func (s *WordStat) Accuracy() float64 {
	attempts := s.Attempts()
	if attempts == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(attempts)
}

// Due reports whether the word's next review time has passed
func (s *WordStat) Due(now time.Time) bool {
	return s.NextReview != nil && !s.NextReview.After(now)
}

// CategoryProgress accumulates session results for one category
type CategoryProgress struct {
	Score         int       `json:"score"`
	TotalAttempts int       `json:"totalAttempts"`
	LastPlayed    time.Time `json:"lastPlayed"`
}

// LearnerStats holds aggregate statistics across all sessions
type LearnerStats struct {
	TotalSessions      int         `json:"totalSessions"`
	TotalPracticeTime  int         `json:"totalPracticeTime"` // seconds
	WordsByDifficulty  map[int]int `json:"wordsByDifficulty"`
	AccuracyHistory    []float64   `json:"accuracyHistory"` // session accuracy percentages
	LastSessionDate    *time.Time  `json:"lastSessionDate"`
	FlashcardSessions  int         `json:"flashcardSessions"`
	QuizSessions       int         `json:"quizSessions"`
	FastestSessionSecs int         `json:"fastestSessionSeconds"` // 0 = no timed session yet
}

// UnlockedAchievement records when a named achievement was unlocked
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// LearnerProgress is the aggregate root of all learning state for one learner.
// It is mutated only through the mastery policy, the session aggregator and
// the achievement evaluator, and persisted as a whole after every mutation.
type LearnerProgress struct {
	LearnedWords         []string                     `json:"learnedWords"`
	WeakWords            []string                     `json:"weakWords"`
	WordStats            map[string]*WordStat         `json:"wordStats"`
	CategoryProgress     map[string]*CategoryProgress `json:"categoryProgress"`
	TotalScore           int                          `json:"totalScore"`
	Streak               int                          `json:"streak"`
	LastPlayed           *time.Time                   `json:"lastPlayed"`
	Achievements         []UnlockedAchievement        `json:"achievements"`
	AchievementsUnlocked map[string]time.Time         `json:"achievementsUnlocked"`
	Stats                LearnerStats                 `json:"stats"`
}

// NewLearnerProgress returns a fresh progress record with all defaults
func NewLearnerProgress() LearnerProgress {
	return LearnerProgress{
		LearnedWords:         []string{},
		WeakWords:            []string{},
		WordStats:            map[string]*WordStat{},
		CategoryProgress:     map[string]*CategoryProgress{},
		Achievements:         []UnlockedAchievement{},
		AchievementsUnlocked: map[string]time.Time{},
		Stats: LearnerStats{
			WordsByDifficulty: emptyHistogram(),
			AccuracyHistory:   []float64{},
		},
	}
}

func emptyHistogram() map[int]int {
	h := make(map[int]int, MaxDifficulty+1)
	for d := 0; d <= MaxDifficulty; d++ {
		h[d] = 0
	}
	return h
}

// Stat returns the WordStat for a word, lazily creating a default record.
// Stats are never deleted once created.
func (p *LearnerProgress) Stat(wordID string) *WordStat {
	if p.WordStats == nil {
		p.WordStats = map[string]*WordStat{}
	}
	stat, ok := p.WordStats[wordID]
	if !ok {
		stat = &WordStat{}
		p.WordStats[wordID] = stat
	}
	return stat
}

// StatOrDefault returns a copy of the word's stat without creating a record
func (p *LearnerProgress) StatOrDefault(wordID string) WordStat {
	if stat, ok := p.WordStats[wordID]; ok && stat != nil {
		return *stat
	}
	return WordStat{}
}

// IsLearned reports whether the word is in the learned set
func (p *LearnerProgress) IsLearned(wordID string) bool {
	return contains(p.LearnedWords, wordID)
}

// IsWeak reports whether the word is flagged for focused practice
func (p *LearnerProgress) IsWeak(wordID string) bool {
	return contains(p.WeakWords, wordID)
}

// AddLearned adds the word to the learned set if absent
func (p *LearnerProgress) AddLearned(wordID string) {
	if !contains(p.LearnedWords, wordID) {
		p.LearnedWords = append(p.LearnedWords, wordID)
	}
}

// RemoveLearned drops the word from the learned set
func (p *LearnerProgress) RemoveLearned(wordID string) {
	p.LearnedWords = remove(p.LearnedWords, wordID)
}

// AddWeak flags the word for focused practice if not already flagged
func (p *LearnerProgress) AddWeak(wordID string) {
	if !contains(p.WeakWords, wordID) {
		p.WeakWords = append(p.WeakWords, wordID)
	}
}

// RemoveWeak clears the word's weak flag
func (p *LearnerProgress) RemoveWeak(wordID string) {
	p.WeakWords = remove(p.WeakWords, wordID)
}

// Normalize fills nil collections and clamps out-of-range values so that a
// document loaded from an older or partial schema behaves like a fresh one
// with its missing fields defaulted.
func (p *LearnerProgress) Normalize() {
	if p.LearnedWords == nil {
		p.LearnedWords = []string{}
	}
	if p.WeakWords == nil {
		p.WeakWords = []string{}
	}
	if p.WordStats == nil {
		p.WordStats = map[string]*WordStat{}
	}
	if p.CategoryProgress == nil {
		p.CategoryProgress = map[string]*CategoryProgress{}
	}
	if p.Achievements == nil {
		p.Achievements = []UnlockedAchievement{}
	}
	if p.AchievementsUnlocked == nil {
		p.AchievementsUnlocked = map[string]time.Time{}
	}
	if p.Stats.AccuracyHistory == nil {
		p.Stats.AccuracyHistory = []float64{}
	}
	if p.Stats.WordsByDifficulty == nil {
		p.Stats.WordsByDifficulty = emptyHistogram()
	}
	for d := 0; d <= MaxDifficulty; d++ {
		if _, ok := p.Stats.WordsByDifficulty[d]; !ok {
			p.Stats.WordsByDifficulty[d] = 0
		}
	}
	for id, stat := range p.WordStats {
		if stat == nil {
			p.WordStats[id] = &WordStat{}
			continue
		}
		if stat.Difficulty < 0 {
			stat.Difficulty = 0
		}
		if stat.Difficulty > MaxDifficulty {
			stat.Difficulty = MaxDifficulty
		}
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
