package models

// Letter represents one entry of the alphabet catalog
type Letter struct {
	ID              int64  `json:"id" db:"id"`
	Glyph           string `json:"glyph" db:"glyph"`
	ExampleWord     string `json:"example_word" db:"example_word"`
	Transliteration string `json:"transliteration" db:"transliteration"`
	Translation     string `json:"translation" db:"translation"`
	Sound           string `json:"sound" db:"sound"`
	Notes           string `json:"notes" db:"notes"`
	Image           string `json:"image" db:"image"` // Optional: URL to a writing diagram
	Position        int    `json:"position" db:"position"`
}
