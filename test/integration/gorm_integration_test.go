package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/constant"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/entity"
	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/unitofwork"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.UserSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	userId := "integration-" + uuid.New().String()

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().CountByUserId(context.Background(), userId)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Check Transactional Session And Document", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		session := &entity.UserSession{
			Id:          uuid.New(),
			UserId:      userId,
			DisplayName: "Integration Test User",
			Mode:        constant.SessionModeNew,
			CreatedAt:   time.Now(),
		}
		err = uow.UserSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		docId := uuid.New()
		doc := &entity.Document{
			Id:         docId,
			UserId:     userId,
			Filename:   "integration.pdf",
			UploadedAt: time.Now(),
		}
		err = uow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		found, err := uow.DocumentRepository().FindById(ctx, docId, userId)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, "integration.pdf", found.Filename)

		// Ownership scoping: another user cannot see the document.
		crossUser, err := uow.DocumentRepository().FindById(ctx, docId, "someone-else")
		assert.NoError(t, err)
		assert.Nil(t, crossUser)

		// Rolled back by the deferred Rollback; nothing persists.
		t.Log("Successfully created Session and Document in Transaction")
	})
}
