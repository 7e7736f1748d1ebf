package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/config"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/controller"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/mailer"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/syncutil"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/memory"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/redisrepo"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/service"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/embedding"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/llm/factory"
	pktNats "github.com/YarinTwito/whatsapp-smart-agent/pkg/nats"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/pdf"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const inboundEventsTopic = "INBOUND_WHATSAPP_EVENTS"

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		fmt.Sprintf("%s <%s>", cfg.SMTP.SenderName, cfg.SMTP.Email),
		cfg.SMTP.AlertEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	indexCache := memory.NewIndexRepository()
	locks := syncutil.NewKeyedMutex()

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	processedRepo := redisrepo.NewProcessedMessageRepository(
		rdb,
		time.Duration(cfg.Limits.DedupWindowMinutes)*time.Minute,
	)

	waClient := whatsapp.NewClient(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberId)
	extractor := pdf.NewExtractor()
	indexBuilder := rag.NewIndexBuilder(embeddingProvider, cfg.Limits.ChunkSize, cfg.Limits.ChunkOverlap)

	// 5. Services
	publisherService := service.NewPublisherService(inboundEventsTopic, pubSub)

	qaService := service.NewQaService(
		uowFactory,
		indexCache,
		indexBuilder,
		embeddingProvider,
		llmProvider,
		sysLogger,
		cfg.Limits.RetrievalTopK,
	)

	ingestionService := service.NewIngestionService(
		uowFactory,
		indexCache,
		indexBuilder,
		extractor,
		waClient,
		locks,
		natsPub,
		sysLogger,
		cfg.Limits.MaxDocsPerUser,
		cfg.Limits.MaxUploadBytes,
		cfg.Limits.ExtractionAttempts,
	)

	dispatcherService := service.NewDispatcherService(
		uowFactory,
		processedRepo,
		locks,
		waClient,
		waClient,
		ingestionService,
		qaService,
		indexCache,
		emailService,
		natsPub,
		sysLogger,
		cfg.Limits.MaxUploadBytes,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		inboundEventsTopic,
		dispatcherService,
		sysLogger,
	)

	adminService := service.NewAdminService(uowFactory, sysLogger)

	// 6. Controllers
	return &Container{
		WebhookController: controller.NewWebhookController(publisherService, cfg.WhatsApp.VerifyToken, sysLogger),
		AdminController:   controller.NewAdminController(adminService),

		ConsumerService: consumerService,
	}
}
