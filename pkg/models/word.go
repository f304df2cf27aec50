package models

// Word represents a single vocabulary pair to be learned
type Word struct {
	ID            string `json:"id"`
	Term          string `json:"term"`        // Word in the target language
	Translation   string `json:"translation"` // Word in the learner's language
	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
}

// Category groups words under a named theme (food, travel, ...)
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Words []Word `json:"words"`
}

// WordByID returns the word with the given ID and whether it was found
func (c Category) WordByID(id string) (Word, bool) {
	for _, w := range c.Words {
		if w.ID == id {
			return w, true
		}
	}
	return Word{}, false
}
