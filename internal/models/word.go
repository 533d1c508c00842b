package models

// Word is a canonical dictionary entry. Only normalized forms are stored,
// so lookups never need to re-normalize stored rows.
type Word struct {
	ID   int64
	Word string
}
