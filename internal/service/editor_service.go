package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type IEditorService interface {
	Load(ctx context.Context, token, fileID string) (*dto.LoadDocumentResponse, error)
	// Save replaces the whole document content upstream. The console never
	// sends patches; accept semantics are whole-document replace.
	Save(ctx context.Context, token, fileID, content string) error
}

type editorService struct {
	client *upstream.Client
	logger logger.ILogger
}

func NewEditorService(client *upstream.Client, log logger.ILogger) IEditorService {
	return &editorService{client: client, logger: log}
}

func (s *editorService) Load(ctx context.Context, token, fileID string) (*dto.LoadDocumentResponse, error) {
	query := url.Values{}
	query.Set("fileId", fileID)

	var res struct {
		FileID  string `json:"fileId"`
		Content string `json:"content"`
	}
	err := s.client.Do(ctx, http.MethodGet, s.client.Webhook("/load-document", query), token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &dto.LoadDocumentResponse{FileID: res.FileID, Content: res.Content}, nil
}

func (s *editorService) Save(ctx context.Context, token, fileID, content string) error {
	body := map[string]string{
		"fileId":  fileID,
		"content": content,
	}
	var res webhookResult
	err := s.client.Do(ctx, http.MethodPut, s.client.Webhook("/save-document", nil), token, body, &res)
	if err != nil {
		return err
	}
	if err := checkResult(res); err != nil {
		return err
	}

	s.logger.Info("Editor", "Document saved", map[string]interface{}{"file_id": fileID})
	return nil
}
