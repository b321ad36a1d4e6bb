package service

import (
	"context"
	"net/http"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type ICreditsService interface {
	Credits(ctx context.Context, token string) (*dto.CreditsResponse, error)
}

type creditsService struct {
	client *upstream.Client
}

func NewCreditsService(client *upstream.Client) ICreditsService {
	return &creditsService{client: client}
}

func (s *creditsService) Credits(ctx context.Context, token string) (*dto.CreditsResponse, error) {
	var res dto.CreditsResponse
	if err := s.client.Do(ctx, http.MethodGet, s.client.Webhook("/credits", nil), token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
