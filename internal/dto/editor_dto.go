package dto

type LoadDocumentResponse struct {
	FileID  string `json:"file_id"`
	Content string `json:"content"`
}

type SaveDocumentRequest struct {
	Content string `json:"content" validate:"required"`
}

// DiffRequest asks for the display diff between the committed document text
// and a proposed replacement.
type DiffRequest struct {
	Committed string `json:"committed"`
	Proposed  string `json:"proposed" validate:"required"`
}
