package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type IDocumentService interface {
	List(ctx context.Context, token string) ([]dto.DocumentResponse, error)
	Upload(ctx context.Context, token string, file *multipart.FileHeader, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Delete(ctx context.Context, token, id string) error
	// Analyze kicks off the document-analysis workflow and returns the
	// execution id the client polls.
	Analyze(ctx context.Context, token, id string) (string, error)
	ExtractText(ctx context.Context, token string, file *multipart.FileHeader) (*dto.ExtractTextResponse, error)
}

type documentService struct {
	client *upstream.Client
	logger logger.ILogger
}

func NewDocumentService(client *upstream.Client, log logger.ILogger) IDocumentService {
	return &documentService{client: client, logger: log}
}

// upstreamDocument is the backend's knowledge-document record.
type upstreamDocument struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	ChunkCount dto.FlexInt `json:"chunk_count"`
	CreatedAt  string      `json:"created_at"`
	Visibility string      `json:"visibility"`
	Deletable  *bool       `json:"deletable"`
	Cluster    string      `json:"cluster"`
}

func (s *documentService) List(ctx context.Context, token string) ([]dto.DocumentResponse, error) {
	var raw json.RawMessage
	err := s.client.Do(ctx, http.MethodGet, s.client.Webhook("/documents", nil), token, nil, &raw)
	if err != nil {
		return nil, err
	}

	docs, err := upstream.DecodeList[upstreamDocument](raw)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		createdAt, _ := time.Parse(time.RFC3339, doc.CreatedAt)
		visibility := doc.Visibility
		if visibility == "" {
			visibility = "private"
		}
		deletable := true
		if doc.Deletable != nil {
			deletable = *doc.Deletable
		}
		out = append(out, dto.DocumentResponse{
			ID:         doc.ID,
			Title:      doc.Title,
			Chunks:     int(doc.ChunkCount),
			CreatedAt:  createdAt,
			Visibility: visibility,
			Deletable:  deletable,
			Cluster:    doc.Cluster,
		})
	}
	return out, nil
}

func (s *documentService) Upload(ctx context.Context, token string, file *multipart.FileHeader, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	contentType, body, err := buildFileForm(file, map[string]string{
		"cluster":    req.Cluster,
		"visibility": req.Visibility,
	})
	if err != nil {
		return nil, err
	}

	var res struct {
		webhookResult
		ID string `json:"id"`
	}
	err = s.client.DoMultipart(ctx, s.client.Webhook("/upload-document", nil), token, contentType, body, &res)
	if err != nil {
		return nil, err
	}
	if err := checkResult(res.webhookResult); err != nil {
		return nil, err
	}

	s.logger.Info("Documents", "Document uploaded", map[string]interface{}{
		"id":      res.ID,
		"cluster": req.Cluster,
	})
	return &dto.UploadDocumentResponse{ID: res.ID}, nil
}

func (s *documentService) Delete(ctx context.Context, token, id string) error {
	var res webhookResult
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/delete-document", nil), token,
		map[string]string{"id": id}, &res)
	if err != nil {
		return err
	}
	return checkResult(res)
}

func (s *documentService) Analyze(ctx context.Context, token, id string) (string, error) {
	var res struct {
		webhookResult
		ExecutionID string `json:"execution_id"`
	}
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/analyze-document", nil), token,
		map[string]string{"id": id}, &res)
	if err != nil {
		return "", err
	}
	if err := checkResult(res.webhookResult); err != nil {
		return "", err
	}
	return res.ExecutionID, nil
}

func (s *documentService) ExtractText(ctx context.Context, token string, file *multipart.FileHeader) (*dto.ExtractTextResponse, error) {
	contentType, body, err := buildFileForm(file, nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		webhookResult
		Text string `json:"text"`
	}
	err = s.client.DoMultipart(ctx, s.client.Webhook("/extract-text", nil), token, contentType, body, &res)
	if err != nil {
		return nil, err
	}
	if err := checkResult(res.webhookResult); err != nil {
		return nil, err
	}
	return &dto.ExtractTextResponse{Text: res.Text}, nil
}

// buildFileForm assembles the multipart body forwarded upstream.
func buildFileForm(file *multipart.FileHeader, fields map[string]string) (string, *bytes.Buffer, error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, apperror.Validation("Unable to read uploaded file")
	}
	defer src.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return "", nil, apperror.Internal(err)
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return "", nil, apperror.Internal(err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", nil, apperror.Internal(err)
	}
	return writer.FormDataContentType(), body, nil
}
