package journal

// CreateJournalRequest is the payload for a new journal entry.
type CreateJournalRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=64"`
}

// UpdateJournalRequest carries optional entry mutations. A non-null tags
// array replaces the whole tag set.
type UpdateJournalRequest struct {
	Title   *string   `json:"title" binding:"omitempty,max=255"`
	Content *string   `json:"content" binding:"omitempty"`
	Tags    *[]string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=64"`
}

// SimilarJournalRequest asks the index for entries close to the given text.
type SimilarJournalRequest struct {
	Text  string `json:"text" binding:"required,max=4096"`
	Limit int    `json:"limit" binding:"omitempty,min=1,max=50"`
}
