package models

import "encoding/json"

// Band is a session difficulty filter applied when selecting words
type Band string

const (
	// BandEasy restricts a session to already-learned words
	BandEasy Band = "easy"
	// BandMedium applies no filtering (the default)
	BandMedium Band = "medium"
	// BandHard restricts a session to unlearned or weak words
	BandHard Band = "hard"
)

// Valid reports whether b is one of the recognized bands
func (b Band) Valid() bool {
	return b == BandEasy || b == BandMedium || b == BandHard
}

// Settings bounds, applied whenever a settings document is loaded
const (
	MinPronunciationSpeed = 0.3
	MaxPronunciationSpeed = 1.5
	MinFlashcardCount     = 5
	MaxFlashcardCount     = 50
)

// Settings holds the learner-adjustable options. Unknown keys found in a
// stored document are kept in Extra and written back untouched.
type Settings struct {
	PronunciationSpeed float64
	DarkMode           bool
	FlashcardCount     int
	GameDifficulty     Band
	SoundEffects       bool
	HintsEnabled       bool
	KeyboardShortcuts  bool
	AutoPronounce      bool

	Extra map[string]json.RawMessage
}

// DefaultSettings returns the documented default for every option
func DefaultSettings() Settings {
	return Settings{
		PronunciationSpeed: 0.8,
		DarkMode:           false,
		FlashcardCount:     25,
		GameDifficulty:     BandMedium,
		SoundEffects:       true,
		HintsEnabled:       true,
		KeyboardShortcuts:  true,
		AutoPronounce:      true,
	}
}

// Clamp forces all options back into their documented ranges
func (s *Settings) Clamp() {
	if s.PronunciationSpeed < MinPronunciationSpeed {
		s.PronunciationSpeed = MinPronunciationSpeed
	}
	if s.PronunciationSpeed > MaxPronunciationSpeed {
		s.PronunciationSpeed = MaxPronunciationSpeed
	}
	if s.FlashcardCount < MinFlashcardCount {
		s.FlashcardCount = MinFlashcardCount
	}
	if s.FlashcardCount > MaxFlashcardCount {
		s.FlashcardCount = MaxFlashcardCount
	}
	if !s.GameDifficulty.Valid() {
		s.GameDifficulty = BandMedium
	}
}

type settingsDoc struct {
	PronunciationSpeed *float64 `json:"pronunciationSpeed,omitempty"`
	DarkMode           *bool    `json:"darkMode,omitempty"`
	FlashcardCount     *int     `json:"flashcardCount,omitempty"`
	GameDifficulty     *Band    `json:"gameDifficulty,omitempty"`
	SoundEffects       *bool    `json:"soundEffects,omitempty"`
	HintsEnabled       *bool    `json:"hintsEnabled,omitempty"`
	KeyboardShortcuts  *bool    `json:"keyboardShortcuts,omitempty"`
	AutoPronounce      *bool    `json:"autoPronounce,omitempty"`
}

var knownSettingKeys = map[string]bool{
	"pronunciationSpeed": true,
	"darkMode":           true,
	"flashcardCount":     true,
	"gameDifficulty":     true,
	"soundEffects":       true,
	"hintsEnabled":       true,
	"keyboardShortcuts":  true,
	"autoPronounce":      true,
}

// UnmarshalJSON fills missing keys with defaults, clamps recognized values
// and preserves unrecognized keys.
func (s *Settings) UnmarshalJSON(data []byte) error {
	*s = DefaultSettings()

	var doc settingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.PronunciationSpeed != nil {
		s.PronunciationSpeed = *doc.PronunciationSpeed
	}
	if doc.DarkMode != nil {
		s.DarkMode = *doc.DarkMode
	}
	if doc.FlashcardCount != nil {
		s.FlashcardCount = *doc.FlashcardCount
	}
	if doc.GameDifficulty != nil {
		s.GameDifficulty = *doc.GameDifficulty
	}
	if doc.SoundEffects != nil {
		s.SoundEffects = *doc.SoundEffects
	}
	if doc.HintsEnabled != nil {
		s.HintsEnabled = *doc.HintsEnabled
	}
	if doc.KeyboardShortcuts != nil {
		s.KeyboardShortcuts = *doc.KeyboardShortcuts
	}
	if doc.AutoPronounce != nil {
		s.AutoPronounce = *doc.AutoPronounce
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		if knownSettingKeys[key] {
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]json.RawMessage{}
		}
		s.Extra[key] = val
	}

	s.Clamp()
	return nil
}

// MarshalJSON writes the recognized options plus any preserved unknown keys
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(knownSettingKeys)+len(s.Extra))
	for key, val := range s.Extra {
		out[key] = val
	}
	out["pronunciationSpeed"] = s.PronunciationSpeed
	out["darkMode"] = s.DarkMode
	out["flashcardCount"] = s.FlashcardCount
	out["gameDifficulty"] = s.GameDifficulty
	out["soundEffects"] = s.SoundEffects
	out["hintsEnabled"] = s.HintsEnabled
	out["keyboardShortcuts"] = s.KeyboardShortcuts
	out["autoPronounce"] = s.AutoPronounce
	return json.Marshal(out)
}
