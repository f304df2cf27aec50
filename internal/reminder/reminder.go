package reminder

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabengine/pkg/models"
)

// Notifier is implemented by the host to surface review reminders
// (a desktop notification, a badge, an email — the engine doesn't care).
type Notifier interface {
	RemindDueWords(count int) error
}

// ProgressSource yields the current learner progress for due checks
type ProgressSource interface {
	GetProgress() models.LearnerProgress
}

// Reminder periodically counts words due for review and notifies the host
// when there is something to practice. Checks outside the configured hours
// are skipped so the learner isn't nudged at night.
type Reminder struct {
	scheduler *gocron.Scheduler
	source    ProgressSource
	notifier  Notifier
	logger    *slog.Logger

	// Interval between due checks
	Interval time.Duration
	// StartHour and EndHour bound the local hours reminders may fire
	StartHour int
	EndHour   int
	// Now is the clock used for due checks. Defaults to time.Now.
	Now func() time.Time
}

// New creates a reminder over the given progress source and notifier
func New(source ProgressSource, notifier Notifier) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		source:    source,
		notifier:  notifier,
		logger:    slog.Default(),
		Interval:  time.Hour,
		StartHour: 8,
		EndHour:   22,
		Now:       time.Now,
	}
}

// Start begins the periodic due checks without blocking
func (r *Reminder) Start() {
	r.scheduler.Every(r.Interval).Do(r.check)
	r.scheduler.StartAsync()
}

// Stop terminates the periodic checks
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// RunManualCheck forces one due check regardless of the hour bounds
func (r *Reminder) RunManualCheck() error {
	count := DueCount(r.source.GetProgress(), r.now())
	if count == 0 {
		return nil
	}
	return r.notifier.RemindDueWords(count)
}

func (r *Reminder) check() {
	now := r.now()
	hour := now.Hour()
	if hour < r.StartHour || hour > r.EndHour {
		return
	}

	count := DueCount(r.source.GetProgress(), now)
	if count == 0 {
		return
	}
	if err := r.notifier.RemindDueWords(count); err != nil {
		r.logger.Warn("due-words reminder failed", slog.Any("error", err))
	}
}

func (r *Reminder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// DueCount returns how many tracked words have a passed next-review time
func DueCount(p models.LearnerProgress, now time.Time) int {
	count := 0
	for _, stat := range p.WordStats {
		if stat != nil && stat.Due(now) {
			count++
		}
	}
	return count
}
