package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"
	"github.com/benvansteenbergen/console-sub000/internal/repository/memory"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) PublishInvalidation(cacheKey string) {
	p.keys = append(p.keys, cacheKey)
}

func newTestClient(t *testing.T, srv *httptest.Server) *upstream.Client {
	t.Helper()
	return upstream.NewClient(config.UpstreamConfig{
		BaseURL:    srv.URL,
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	}, nopLogger{})
}

const testToken = "tok-abcdefghijklmnop"

func TestFolderListCachesWithinTTL(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		w.Write([]byte(`[{"blog posts": {"items": [{"id":"f1"}], "newFiles": "3"}}]`))
	}))
	defer srv.Close()

	svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(time.Minute), &recordingPublisher{}, nopLogger{})

	first, err := svc.List(context.Background(), testToken, "")
	require.NoError(t, err)
	second, err := svc.List(context.Background(), testToken, "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "second request within TTL must be served from cache")
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "blog posts", first[0].Folder)
	assert.Equal(t, 3, first[0].Unseen)
}

func TestFolderListRefetchesAfterTTL(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`[{"blog posts": {"items": [], "newFiles": 0}}]`))
	}))
	defer srv.Close()

	svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(20*time.Millisecond), &recordingPublisher{}, nopLogger{})

	_, err := svc.List(context.Background(), testToken, "")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = svc.List(context.Background(), testToken, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestFolderListCaseInsensitiveMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"blog posts": {"items": [], "newFiles": "1"}}, {"newsletters": {"items": [], "newFiles": "0"}}]`))
	}))
	defer srv.Close()

	svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(time.Minute), &recordingPublisher{}, nopLogger{})

	stats, err := svc.List(context.Background(), testToken, "Blog Posts")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "blog posts", stats[0].Folder)

	_, err = svc.List(context.Background(), testToken, "does-not-exist")
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestFolderListUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(time.Minute), &recordingPublisher{}, nopLogger{})

	_, err := svc.List(context.Background(), testToken, "")
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 502, appErr.Code)
}

func TestFolderListMalformedUpstreamBody(t *testing.T) {
	bodies := []string{"", "not json", `{"data": 42}`}
	for _, body := range bodies {
		t.Run("body "+body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(time.Minute), &recordingPublisher{}, nopLogger{})

			_, err := svc.List(context.Background(), testToken, "")
			require.Error(t, err)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, 502, appErr.Code)
		})
	}
}

func TestFolderMutationsPublishInvalidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	publisher := &recordingPublisher{}
	svc := NewFolderService(newTestClient(t, srv), memory.NewFolderCache(time.Minute), publisher, nopLogger{})

	require.NoError(t, svc.CreateFolder(context.Background(), testToken, &dto.CreateFolderRequest{Name: "drafts"}))
	require.NoError(t, svc.MoveFile(context.Background(), testToken, &dto.MoveFileRequest{FileID: "f1", Folder: "drafts"}))

	wantKey := contract.CacheKey(testToken)
	assert.Equal(t, []string{wantKey, wantKey}, publisher.keys)
}
