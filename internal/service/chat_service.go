package service

import (
	"context"
	"net/http"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"

	"github.com/google/uuid"
)

type IChatService interface {
	Send(ctx context.Context, token string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	// RequestEdit adapts the review-chat route to the edit-flow Assistant
	// contract: reply text plus an optional proposed replacement.
	RequestEdit(ctx context.Context, token, fileID, committed, instruction string) (string, string, error)
}

type chatService struct {
	client *upstream.Client
	logger logger.ILogger
}

func NewChatService(client *upstream.Client, log logger.ILogger) IChatService {
	return &chatService{client: client, logger: log}
}

func (s *chatService) Send(ctx context.Context, token string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	body := map[string]string{
		"conversationId": conversationID,
		"fileId":         req.FileID,
		"documentText":   req.DocumentText,
		"message":        req.Message,
		"persona":        req.Persona,
		"mode":           req.Mode,
	}

	var res struct {
		AssistantMessage string `json:"assistant_message"`
		SuggestedText    string `json:"suggested_text"`
	}
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/review-chat", nil), token, body, &res)
	if err != nil {
		return nil, err
	}

	// Feedback mode is conversational only. Whatever the assistant returned,
	// it must not surface as a proposal.
	suggested := res.SuggestedText
	if req.Mode == dto.ChatModeFeedback {
		suggested = ""
	}

	return &dto.ChatResponse{
		ConversationID:   conversationID,
		AssistantMessage: res.AssistantMessage,
		SuggestedText:    suggested,
	}, nil
}

func (s *chatService) RequestEdit(ctx context.Context, token, fileID, committed, instruction string) (string, string, error) {
	res, err := s.Send(ctx, token, &dto.ChatRequest{
		FileID:       fileID,
		DocumentText: committed,
		Message:      instruction,
		Mode:         dto.ChatModeEdit,
	})
	if err != nil {
		return "", "", err
	}
	return res.AssistantMessage, res.SuggestedText, nil
}
