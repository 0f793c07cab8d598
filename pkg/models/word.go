package models

import "strings"

// Word represents a vocabulary entry from the catalog
type Word struct {
	ID           int64  `json:"id" db:"id"`
	Word         string `json:"word" db:"word"`
	Translation  string `json:"translation" db:"translation"`
	Level        int    `json:"level" db:"level"` // 1-6 difficulty bucket
	Rank         int    `json:"rank" db:"rank"`   // importance order inside the level
	Image        string `json:"image" db:"image"` // Optional: URL to an illustration
	Romanization string `json:"romanization" db:"romanization"`
	Examples     string `json:"examples" db:"examples"` // newline-separated example sentences
}

// ExampleList splits the stored examples into individual sentences
func (w Word) ExampleList() []string {
	if w.Examples == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(w.Examples, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
