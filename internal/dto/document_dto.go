package dto

import "time"

type DocumentResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Chunks     int       `json:"chunks"`
	CreatedAt  time.Time `json:"created_at"`
	Visibility string    `json:"visibility"` // "private" | "shared"
	Deletable  bool      `json:"deletable"`
	Cluster    string    `json:"cluster"`
}

type UploadDocumentRequest struct {
	Cluster    string `json:"cluster"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private shared"`
}

type UploadDocumentResponse struct {
	ID string `json:"id"`
}

type ExtractTextResponse struct {
	Text string `json:"text"`
}
