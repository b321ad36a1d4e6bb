package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type ISettingsService interface {
	Agents(ctx context.Context, token string) ([]dto.AgentToggle, error)
	UpdateAgent(ctx context.Context, token string, req *dto.UpdateAgentRequest) error
}

type settingsService struct {
	client *upstream.Client
}

func NewSettingsService(client *upstream.Client) ISettingsService {
	return &settingsService{client: client}
}

func (s *settingsService) Agents(ctx context.Context, token string) ([]dto.AgentToggle, error) {
	var raw json.RawMessage
	err := s.client.Do(ctx, http.MethodGet, s.client.Webhook("/agents", nil), token, nil, &raw)
	if err != nil {
		return nil, err
	}
	return upstream.DecodeList[dto.AgentToggle](raw)
}

func (s *settingsService) UpdateAgent(ctx context.Context, token string, req *dto.UpdateAgentRequest) error {
	body := map[string]interface{}{
		"agent":   req.Agent,
		"enabled": *req.Enabled,
	}
	var res webhookResult
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/agents/update", nil), token, body, &res)
	if err != nil {
		return err
	}
	return checkResult(res)
}
