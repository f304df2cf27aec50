package achievements

import (
	"log/slog"
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// Condition decides whether an achievement is satisfied by the current
// progress. Conditions must be pure; a panicking condition is treated as
// not satisfied.
type Condition func(p *models.LearnerProgress, categories []models.Category) bool

// Achievement is one named, unlock-once milestone
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   Condition
}

// Registry is the immutable set of achievements an evaluator checks.
// It is passed in explicitly so tests can run against fixture registries.
type Registry []Achievement

// DefaultRegistry returns the built-in achievement set
func DefaultRegistry() Registry {
	return Registry{
		{
			ID:          "first_steps",
			Name:        "First Steps",
			Description: "Complete your first learning session",
			Icon:        "👶",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return p.Stats.TotalSessions >= 1
			},
		},
		{
			ID:          "week_warrior",
			Name:        "Week Warrior",
			Description: "Maintain a 7-day streak",
			Icon:        "🔥",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return p.Streak >= 7
			},
		},
		{
			ID:          "month_master",
			Name:        "Month Master",
			Description: "Maintain a 30-day streak",
			Icon:        "🏆",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return p.Streak >= 30
			},
		},
		{
			ID:          "category_master",
			Name:        "Category Master",
			Description: "Master 100% of words in any category",
			Icon:        "⭐",
			Condition: func(p *models.LearnerProgress, categories []models.Category) bool {
				for _, cat := range categories {
					if len(cat.Words) == 0 {
						continue
					}
					learned := 0
					for _, w := range cat.Words {
						if p.IsLearned(w.ID) {
							learned++
						}
					}
					if learned == len(cat.Words) {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "word_collector",
			Name:        "Word Collector",
			Description: "Learn 50 words",
			Icon:        "📚",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return len(p.LearnedWords) >= 50
			},
		},
		{
			ID:          "word_master",
			Name:        "Word Master",
			Description: "Learn 100 words",
			Icon:        "👑",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return len(p.LearnedWords) >= 100
			},
		},
		{
			ID:          "perfect_score",
			Name:        "Perfect Score",
			Description: "Score 100% in any session",
			Icon:        "💯",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				for _, acc := range p.Stats.AccuracyHistory {
					if acc >= 100 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "speed_demon",
			Name:        "Speed Demon",
			Description: "Complete a session in under 2 minutes",
			Icon:        "⚡",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				fastest := p.Stats.FastestSessionSecs
				return fastest > 0 && fastest < 120
			},
		},
		{
			ID:          "flashcard_fanatic",
			Name:        "Flashcard Fanatic",
			Description: "Complete 50 flashcard sessions",
			Icon:        "🃏",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return p.Stats.FlashcardSessions >= 50
			},
		},
		{
			ID:          "quiz_whiz",
			Name:        "Quiz Whiz",
			Description: "Complete 50 quiz sessions",
			Icon:        "❓",
			Condition: func(p *models.LearnerProgress, _ []models.Category) bool {
				return p.Stats.QuizSessions >= 50
			},
		},
	}
}

// Evaluator checks a registry against progress and records unlocks.
// Each achievement unlocks at most once; re-running with unchanged
// progress yields nothing new.
type Evaluator struct {
	Registry Registry
	// Now stamps unlock times. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// NewEvaluator creates an evaluator over the given registry
func NewEvaluator(registry Registry) *Evaluator {
	return &Evaluator{Registry: registry, Now: time.Now}
}

// Evaluate returns the achievements newly satisfied by the current
// progress and records their unlock on the progress record itself.
func (e *Evaluator) Evaluate(p *models.LearnerProgress, categories []models.Category) []Achievement {
	var unlocked []Achievement
	for _, a := range e.Registry {
		if _, done := p.AchievementsUnlocked[a.ID]; done {
			continue
		}
		if !e.satisfied(a, p, categories) {
			continue
		}
		now := e.now()
		if p.AchievementsUnlocked == nil {
			p.AchievementsUnlocked = map[string]time.Time{}
		}
		p.AchievementsUnlocked[a.ID] = now
		p.Achievements = append(p.Achievements, models.UnlockedAchievement{ID: a.ID, UnlockedAt: now})
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// satisfied evaluates one condition, converting a panic into "not satisfied"
// so a broken predicate cannot abort the rest of the registry.
func (e *Evaluator) satisfied(a Achievement, p *models.LearnerProgress, categories []models.Category) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger().Warn("achievement condition panicked",
				slog.String("achievement", a.ID),
				slog.Any("panic", r))
			ok = false
		}
	}()
	if a.Condition == nil {
		return false
	}
	return a.Condition(p, categories)
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
