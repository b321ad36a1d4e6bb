package service

import (
	"context"
	"net/http"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type IAuthService interface {
	// Login exchanges credentials for the upstream bearer token.
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	// UserInfo validates the session against the backend and returns the
	// profile record.
	UserInfo(ctx context.Context, token string) (*dto.UserInfoResponse, error)
}

type authService struct {
	client *upstream.Client
	logger logger.ILogger
}

func NewAuthService(client *upstream.Client, log logger.ILogger) IAuthService {
	return &authService{client: client, logger: log}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	// The backend calls the login field "identifier".
	body := map[string]string{
		"identifier": req.Email,
		"password":   req.Password,
	}

	var res struct {
		Token string `json:"token"`
	}
	err := s.client.Do(ctx, http.MethodPost, s.client.Rest("/login", nil), "", body, &res)
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Code == 401 {
			return "", apperror.Unauthenticated("Invalid credentials")
		}
		return "", err
	}
	if res.Token == "" {
		return "", apperror.Unauthenticated("Invalid credentials")
	}

	s.logger.Info("Auth", "Login succeeded", map[string]interface{}{"email": req.Email})
	return res.Token, nil
}

func (s *authService) UserInfo(ctx context.Context, token string) (*dto.UserInfoResponse, error) {
	var res dto.UserInfoResponse
	if err := s.client.Do(ctx, http.MethodGet, s.client.Rest("/userinfo", nil), token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
