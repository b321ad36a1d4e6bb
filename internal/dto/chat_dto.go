package dto

// Chat modes. Feedback mode never yields a suggested text; only edit mode can
// produce a proposal for the preview/commit flow.
const (
	ChatModeEdit     = "edit"
	ChatModeFeedback = "feedback"
)

type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	FileID         string `json:"file_id" validate:"required"`
	DocumentText   string `json:"document_text"`
	Message        string `json:"message" validate:"required"`
	Persona        string `json:"persona"`
	Mode           string `json:"mode" validate:"required,oneof=edit feedback"`
}

type ChatResponse struct {
	ConversationID   string `json:"conversation_id"`
	AssistantMessage string `json:"assistant_message"`
	SuggestedText    string `json:"suggested_text,omitempty"`
}
