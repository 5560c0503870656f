package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/airrands/airrands-backend/internal/domain/model"
)

// Migrate runs schema migrations for all models.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations")

	err := db.AutoMigrate(
		&model.User{},
		&model.SellerProfile{},
		&model.RunnerProfile{},
		&model.Payment{},
		&model.Order{},
		&model.Verification{},
		&model.Notification{},
		&model.NotificationPreference{},
		&model.Errand{},
		&model.ChatMessage{},
		&model.ChatParticipant{},
		&model.GatewayWebhookEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}
