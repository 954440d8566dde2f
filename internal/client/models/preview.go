package models

// GeneratedPreview is the unsaved result of AI generation from a document.
type GeneratedPreview struct {
	Flashcards     []FlashcardDraft `json:"flashcards"`
	SourceFileName string           `json:"source_file_name"`
}

// SavePreviewRequest persists an edited preview.
type SavePreviewRequest struct {
	Flashcards     []FlashcardDraft `json:"flashcards"`
	SourceFileName string           `json:"source_file_name,omitempty"`
}
