package progress

import (
	"math"

	"github.com/example/vocabengine/pkg/models"
)

// CategoryStats is the per-category read model shown on a stats screen
type CategoryStats struct {
	Category       models.Category
	LearnedCount   int
	TotalWords     int
	Completion     int // percent of the category's words learned
	Accuracy       int // percent correct across all attempts in the category
	TotalCorrect   int
	TotalIncorrect int
}

// CategoryBreakdown derives per-category completion and accuracy from the
// learner's word statistics.
func CategoryBreakdown(p *models.LearnerProgress, categories []models.Category) []CategoryStats {
	out := make([]CategoryStats, 0, len(categories))
	for _, cat := range categories {
		cs := CategoryStats{Category: cat, TotalWords: len(cat.Words)}
		for _, w := range cat.Words {
			if p.IsLearned(w.ID) {
				cs.LearnedCount++
			}
			stat := p.StatOrDefault(w.ID)
			cs.TotalCorrect += stat.CorrectCount
			cs.TotalIncorrect += stat.IncorrectCount
		}
		if cs.TotalWords > 0 {
			cs.Completion = roundPercent(cs.LearnedCount, cs.TotalWords)
		}
		if attempts := cs.TotalCorrect + cs.TotalIncorrect; attempts > 0 {
			cs.Accuracy = roundPercent(cs.TotalCorrect, attempts)
		}
		out = append(out, cs)
	}
	return out
}

// WordsByDifficulty buckets every known word by its current difficulty level
func WordsByDifficulty(p *models.LearnerProgress, categories []models.Category) map[int][]models.Word {
	buckets := make(map[int][]models.Word, models.MaxDifficulty+1)
	for d := 0; d <= models.MaxDifficulty; d++ {
		buckets[d] = []models.Word{}
	}
	for _, cat := range categories {
		for _, w := range cat.Words {
			stat := p.StatOrDefault(w.ID)
			d := stat.Difficulty
			if d < 0 {
				d = 0
			}
			if d > models.MaxDifficulty {
				d = models.MaxDifficulty
			}
			buckets[d] = append(buckets[d], w)
		}
	}
	return buckets
}

// WeakWordList returns every word currently flagged weak, in category order
func WeakWordList(p *models.LearnerProgress, categories []models.Category) []models.Word {
	var out []models.Word
	for _, cat := range categories {
		for _, w := range cat.Words {
			if p.IsWeak(w.ID) {
				out = append(out, w)
			}
		}
	}
	return out
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
