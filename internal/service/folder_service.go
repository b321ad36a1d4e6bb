package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/events"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type IFolderService interface {
	// List returns the folder listing, served from cache while the TTL holds.
	// A non-empty folder narrows the result to the case-insensitive match.
	List(ctx context.Context, token, folder string) ([]dto.FolderStat, error)
	CreateFolder(ctx context.Context, token string, req *dto.CreateFolderRequest) error
	MoveFile(ctx context.Context, token string, req *dto.MoveFileRequest) error
}

type folderService struct {
	client    *upstream.Client
	cache     contract.FolderCache
	publisher events.IInvalidationPublisher
	logger    logger.ILogger
}

func NewFolderService(
	client *upstream.Client,
	cache contract.FolderCache,
	publisher events.IInvalidationPublisher,
	log logger.ILogger,
) IFolderService {
	return &folderService{
		client:    client,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// upstreamFolderEntry is one element of the content-storage response: a
// single-key object keyed by folder name.
type upstreamFolderEntry map[string]struct {
	Items    []dto.DriveItem `json:"items"`
	NewFiles dto.FlexInt     `json:"newFiles"`
}

func (s *folderService) List(ctx context.Context, token, folder string) ([]dto.FolderStat, error) {
	key := contract.CacheKey(token)

	stats, hit := s.cache.Get(key)
	if !hit {
		fetched, err := s.fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, fetched)
		stats = fetched
	}

	if folder == "" {
		return stats, nil
	}
	for _, stat := range stats {
		if strings.EqualFold(stat.Folder, folder) {
			return []dto.FolderStat{stat}, nil
		}
	}
	return nil, apperror.NotFound("Folder not found: " + folder)
}

func (s *folderService) fetch(ctx context.Context, token string) ([]dto.FolderStat, error) {
	var entries []upstreamFolderEntry
	err := s.client.Do(ctx, http.MethodGet, s.client.Webhook("/content-storage", nil), token, nil, &entries)
	if err != nil {
		return nil, err
	}

	stats := make([]dto.FolderStat, 0, len(entries))
	for _, entry := range entries {
		for name, payload := range entry {
			items := payload.Items
			if items == nil {
				items = []dto.DriveItem{}
			}
			stats = append(stats, dto.FolderStat{
				Folder: name,
				Unseen: int(payload.NewFiles),
				Items:  items,
			})
		}
	}
	return stats, nil
}

func (s *folderService) CreateFolder(ctx context.Context, token string, req *dto.CreateFolderRequest) error {
	var res webhookResult
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/create-folder", nil), token,
		map[string]string{"name": req.Name}, &res)
	if err != nil {
		return err
	}
	if err := checkResult(res); err != nil {
		return err
	}

	s.publisher.PublishInvalidation(contract.CacheKey(token))
	return nil
}

func (s *folderService) MoveFile(ctx context.Context, token string, req *dto.MoveFileRequest) error {
	var res webhookResult
	err := s.client.Do(ctx, http.MethodPost, s.client.Webhook("/move-file", nil), token,
		map[string]string{"fileId": req.FileID, "folder": req.Folder}, &res)
	if err != nil {
		return err
	}
	if err := checkResult(res); err != nil {
		return err
	}

	s.publisher.PublishInvalidation(contract.CacheKey(token))
	return nil
}
