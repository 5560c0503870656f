package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	adapterRepo "github.com/airrands/airrands-backend/internal/adapter/repository"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// Repositories aggregates all data access implementations.
type Repositories struct {
	Payment      repository.PaymentRepository
	Order        repository.OrderRepository
	Verification repository.VerificationRepository
	Notification repository.NotificationRepository
	User         repository.UserRepository
	Errand       repository.ErrandRepository
	Chat         repository.ChatRepository
	WebhookEvent repository.WebhookEventRepository
}

// NewRepositories wires all repositories against one database handle.
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Payment:      adapterRepo.NewPaymentRepository(db, logger),
		Order:        adapterRepo.NewOrderRepository(db, logger),
		Verification: adapterRepo.NewVerificationRepository(db, logger),
		Notification: adapterRepo.NewNotificationRepository(db, logger),
		User:         adapterRepo.NewUserRepository(db, logger),
		Errand:       adapterRepo.NewErrandRepository(db, logger),
		Chat:         adapterRepo.NewChatRepository(db, logger),
		WebhookEvent: adapterRepo.NewWebhookEventRepository(db, logger),
	}
}
