package review

import (
	"math/rand"
	"time"

	"github.com/example/vocabengine/pkg/models"
)

// DefaultSessionSize caps a session when no explicit size is configured
const DefaultSessionSize = 25

// Options selects and sizes the word pool for one practice session
type Options struct {
	// Band filters the pool by mastery: easy = learned words only,
	// hard = unlearned or weak words, medium (or empty) = everything.
	Band models.Band
	// WeakOnly restricts the pool to weak-flagged words. If no weak words
	// exist in the pool the full pool is used instead.
	WeakOnly bool
	// SessionSize overrides the scheduler's configured cap when > 0
	SessionSize int
}

// Scheduler builds the ordered word list for a practice session, putting
// due and weak words ahead of the rest before capping to the session size.
type Scheduler struct {
	// Now is the clock used for due checks. Defaults to time.Now.
	Now func() time.Time
	// Rand drives the shuffles. Tests may seed it deterministically.
	Rand *rand.Rand
	// SessionSize is the default cap applied when Options carries none
	SessionSize int
}

// NewScheduler creates a scheduler with the default session size and a
// time-seeded random source.
func NewScheduler() *Scheduler {
	return &Scheduler{
		Now:         time.Now,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		SessionSize: DefaultSessionSize,
	}
}

// Select returns the words for one session. Due words (past their next
// review) and weak words come first so the cap never silently drops them;
// both partitions are shuffled uniformly. The result contains no duplicate
// IDs and never exceeds the session size.
func (s *Scheduler) Select(progress *models.LearnerProgress, words []models.Word, opts Options) []models.Word {
	pool := dedupe(words)

	if opts.WeakOnly {
		weak := filter(pool, progress.IsWeak)
		if len(weak) > 0 {
			pool = weak
		}
	}

	switch opts.Band {
	case models.BandEasy:
		pool = filter(pool, progress.IsLearned)
	case models.BandHard:
		pool = filter(pool, func(id string) bool {
			return !progress.IsLearned(id) || progress.IsWeak(id)
		})
	}

	// Spaced-repetition prioritization applies only to plain medium
	// sessions; weak-only and banded sessions are already targeted.
	var ordered []models.Word
	if !opts.WeakOnly && (opts.Band == "" || opts.Band == models.BandMedium) {
		now := s.now()
		due := filter(pool, func(id string) bool {
			stat := progress.StatOrDefault(id)
			return stat.Due(now) || progress.IsWeak(id)
		})
		rest := filter(pool, func(id string) bool {
			stat := progress.StatOrDefault(id)
			return !(stat.Due(now) || progress.IsWeak(id))
		})
		s.shuffle(due)
		s.shuffle(rest)
		ordered = append(due, rest...)
	} else {
		ordered = append([]models.Word(nil), pool...)
		s.shuffle(ordered)
	}

	size := s.sessionSize(opts)
	if len(ordered) > size {
		ordered = ordered[:size]
	}
	return ordered
}

func (s *Scheduler) sessionSize(opts Options) int {
	size := opts.SessionSize
	if size <= 0 {
		size = s.SessionSize
	}
	if size < 1 {
		size = 1
	}
	return size
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// shuffle is a uniform Fisher-Yates shuffle
func (s *Scheduler) shuffle(words []models.Word) {
	r := s.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

func filter(words []models.Word, keep func(id string) bool) []models.Word {
	var out []models.Word
	for _, w := range words {
		if keep(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each word ID
func dedupe(words []models.Word) []models.Word {
	seen := make(map[string]bool, len(words))
	var out []models.Word
	for _, w := range words {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}
