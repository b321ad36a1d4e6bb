package bootstrap

import (
	"context"
	"log"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/controller"
	"github.com/benvansteenbergen/console-sub000/internal/events"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"
	"github.com/benvansteenbergen/console-sub000/internal/repository/memory"
	"github.com/benvansteenbergen/console-sub000/internal/repository/rediscache"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
	ws "github.com/benvansteenbergen/console-sub000/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	FolderController    controller.IFolderController
	DocumentController  controller.IDocumentController
	CreditsController   controller.ICreditsController
	ChatController      controller.IChatController
	ExecutionController controller.IExecutionController
	EditorController    controller.IEditorController
	SettingsController  controller.ISettingsController
	LiveController      controller.ILiveController

	// Route guard shared by every proxy group
	SessionMiddleware fiber.Handler

	// Background consumers (exposed for main.go to run)
	InvalidationConsumer events.IInvalidationConsumer

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	if cfg.Session.Secret == "" {
		log.Println("[WARN] SESSION_SECRET is empty; session cookies are not tamper-proof")
	}

	upstreamClient := upstream.NewClient(cfg.Upstream, sysLogger)

	// 2. Infrastructure
	// Redis (optional; required for the shared cache backend and cross-instance
	// websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// Folder cache backend
	var folderCache contract.FolderCache
	if cfg.Cache.Backend == "redis" && rdb != nil {
		folderCache = rediscache.NewFolderCache(rdb, cfg.Cache.TTL, sysLogger)
		log.Println("[INFO] Using folder cache backend: REDIS")
	} else {
		folderCache = memory.NewFolderCache(cfg.Cache.TTL)
		log.Println("[INFO] Using folder cache backend: MEMORY")
	}

	// Event bus for cache invalidation
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	invalidationPublisher := events.NewInvalidationPublisher(pubSub, sysLogger)
	invalidationConsumer := events.NewInvalidationConsumer(pubSub, folderCache, sysLogger)

	// WebSocket hub
	hub := ws.NewHub(rdb, sysLogger)
	go hub.Run()

	// 3. Services
	authService := service.NewAuthService(upstreamClient, sysLogger)
	folderService := service.NewFolderService(upstreamClient, folderCache, invalidationPublisher, sysLogger)
	documentService := service.NewDocumentService(upstreamClient, sysLogger)
	creditsService := service.NewCreditsService(upstreamClient)
	chatService := service.NewChatService(upstreamClient, sysLogger)
	executionService := service.NewExecutionService(upstreamClient)
	editorService := service.NewEditorService(upstreamClient, sysLogger)
	settingsService := service.NewSettingsService(upstreamClient)

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService, cfg.Session),
		FolderController:    controller.NewFolderController(folderService),
		DocumentController:  controller.NewDocumentController(documentService),
		CreditsController:   controller.NewCreditsController(creditsService),
		ChatController:      controller.NewChatController(chatService),
		ExecutionController: controller.NewExecutionController(executionService),
		EditorController:    controller.NewEditorController(editorService),
		SettingsController:  controller.NewSettingsController(settingsService, authService),
		LiveController:      controller.NewLiveController(hub, executionService, sysLogger),

		SessionMiddleware: serverutils.SessionMiddleware(cfg.Session),

		InvalidationConsumer: invalidationConsumer,
		Logger:               sysLogger,
	}
}
