package domain

// Word is a vocabulary entry.
type Word struct {
	ID         int    `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
}

// GetID implements store.Record.
func (w Word) GetID() int { return w.ID }

// WordCheck is the outcome of looking a word up in the vocabulary.
type WordCheck struct {
	Correct    bool   `json:"correct"`
	Word       string `json:"word,omitempty"`
	Definition string `json:"definition,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	Message    string `json:"message,omitempty"`
}
