package controller

import (
	"context"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	ws "github.com/benvansteenbergen/console-sub000/internal/websocket"
	"github.com/benvansteenbergen/console-sub000/pkg/polling"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// pollInterval matches the cadence the console UI polls at.
const pollInterval = 2 * time.Second

type ILiveController interface {
	RegisterRoutes(r fiber.Router, session fiber.Handler)
}

// liveController pushes execution status over a websocket instead of making
// the browser poll the REST route. Server-side it is the same watch loop.
type liveController struct {
	hub        *ws.Hub
	executions service.IExecutionService
	logger     logger.ILogger
}

func NewLiveController(hub *ws.Hub, executions service.IExecutionService, log logger.ILogger) ILiveController {
	return &liveController{
		hub:        hub,
		executions: executions,
		logger:     log,
	}
}

func (c *liveController) RegisterRoutes(r fiber.Router, session fiber.Handler) {
	h := r.Group("/live")
	h.Use(session)
	h.Use("/executions/:id", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("/executions/:id", websocket.New(c.stream))
}

func (c *liveController) stream(conn *websocket.Conn) {
	token, _ := conn.Locals(serverutils.LocalSessionToken).(string)
	executionID := conn.Params("id")
	if token == "" || executionID == "" {
		conn.Close()
		return
	}
	sessionKey := contract.CacheKey(token)

	client := ws.ServeWs(c.hub, conn, sessionKey)

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := polling.NewTracker()
	watcher := polling.NewWatcher(pollInterval,
		func(ctx context.Context) (*dto.ExecutionResponse, error) {
			return c.executions.Status(ctx, token, executionID)
		},
		polling.WithUpdateFunc(func(execution *dto.ExecutionResponse) {
			c.hub.Publish(sessionKey, ws.ExecutionEvent{
				Type:        "execution_update",
				ExecutionID: executionID,
				Status:      execution.Status,
				Steps:       tracker.Observe(execution.Trace),
			})
		}),
	)

	go func() {
		outcome, err := watcher.Run(watchCtx)
		if err != nil {
			// Cancelled: the peer went away, nothing left to push.
			return
		}
		c.hub.Publish(sessionKey, ws.ExecutionEvent{
			Type:        "execution_result",
			ExecutionID: executionID,
			Status:      outcome.Status,
			DocumentID:  outcome.DocumentID,
		})
	}()

	// Cancel the watch as soon as the peer disconnects.
	go func() {
		<-client.Done
		cancel()
	}()

	client.Run()
}
