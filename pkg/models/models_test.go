package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_UnmarshalClampsRanges(t *testing.T) {
	var s Settings
	raw := []byte(`{"pronunciationSpeed": 9.0, "flashcardCount": 2, "gameDifficulty": "brutal"}`)
	require.NoError(t, json.Unmarshal(raw, &s))

	assert.Equal(t, MaxPronunciationSpeed, s.PronunciationSpeed)
	assert.Equal(t, MinFlashcardCount, s.FlashcardCount)
	assert.Equal(t, BandMedium, s.GameDifficulty)
}

func TestSettings_DefaultsApplied(t *testing.T) {
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{}`), &s))
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettings_MarshalKeepsUnknownKeys(t *testing.T) {
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{"darkMode": true, "theme": "ocean"}`), &s))

	out, err := json.Marshal(s)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.Contains(t, round, "theme")
	assert.Contains(t, round, "pronunciationSpeed")
}

func TestWordStat_Accuracy(t *testing.T) {
	stat := WordStat{}
	assert.Zero(t, stat.Accuracy())

	stat.CorrectCount = 3
	stat.IncorrectCount = 1
	assert.InDelta(t, 0.75, stat.Accuracy(), 0.001)
}

func TestWordStat_Due(t *testing.T) {
	now := time.Now()
	stat := WordStat{}
	assert.False(t, stat.Due(now), "a word with no schedule is never due")

	past := now.Add(-time.Minute)
	stat.NextReview = &past
	assert.True(t, stat.Due(now))

	future := now.Add(time.Minute)
	stat.NextReview = &future
	assert.False(t, stat.Due(now))
}

func TestLearnerProgress_StatIsLazyAndStable(t *testing.T) {
	p := NewLearnerProgress()
	assert.Empty(t, p.WordStats)

	stat := p.Stat("w1")
	stat.CorrectCount = 2
	assert.Same(t, stat, p.Stat("w1"))
	assert.Equal(t, 2, p.WordStats["w1"].CorrectCount)
}

func TestLearnerProgress_SetHelpers(t *testing.T) {
	p := NewLearnerProgress()

	p.AddWeak("w1")
	p.AddWeak("w1")
	assert.Equal(t, []string{"w1"}, p.WeakWords)

	p.RemoveWeak("w1")
	assert.Empty(t, p.WeakWords)
	p.RemoveWeak("missing") // no-op

	p.AddLearned("w2")
	assert.True(t, p.IsLearned("w2"))
	p.RemoveLearned("w2")
	assert.False(t, p.IsLearned("w2"))
}

func TestCategory_WordByID(t *testing.T) {
	cat := Category{ID: "food", Words: []Word{{ID: "w1", Term: "pomme"}}}

	w, ok := cat.WordByID("w1")
	assert.True(t, ok)
	assert.Equal(t, "pomme", w.Term)

	_, ok = cat.WordByID("w2")
	assert.False(t, ok)
}
