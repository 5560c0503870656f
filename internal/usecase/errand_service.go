package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/domain/model"
	"github.com/airrands/airrands-backend/internal/domain/repository"
)

// ErrandService handles errand postings and the fan-out to online runners.
type ErrandService struct {
	errands  repository.ErrandRepository
	users    repository.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewErrandService creates a new errand service.
func NewErrandService(errands repository.ErrandRepository, users repository.UserRepository, notifier Notifier, logger *zap.Logger) *ErrandService {
	return &ErrandService{
		errands:  errands,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Create posts a new errand and notifies every online runner. The fan-out
// is best-effort; a runner who misses the push still sees the errand in the
// open list.
func (s *ErrandService) Create(ctx context.Context, buyerID uuid.UUID, req *dto.CreateErrandRequest) (*model.Errand, error) {
	errand := &model.Errand{
		ID:             uuid.New(),
		BuyerID:        buyerID,
		Title:          req.Title,
		Description:    req.Description,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		FeeKobo:        req.FeeKobo,
		Status:         model.ErrandStatusOpen,
	}

	if err := s.errands.Create(ctx, errand); err != nil {
		return nil, err
	}

	s.logger.Info("errand created",
		zap.String("errand_id", errand.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.Int64("fee_kobo", req.FeeKobo))

	s.fanOutToRunners(ctx, errand)

	return errand, nil
}

func (s *ErrandService) fanOutToRunners(ctx context.Context, errand *model.Errand) {
	runners, err := s.users.ListOnlineRunners(ctx)
	if err != nil {
		s.logger.Warn("failed to list online runners for errand fan-out",
			zap.String("errand_id", errand.ID.String()),
			zap.Error(err))
		return
	}
	if len(runners) == 0 {
		return
	}

	body := fmt.Sprintf("%s: %s to %s", errand.Title, errand.PickupAddress, errand.DropoffAddress)
	data := map[string]interface{}{
		"errand_id": errand.ID.String(),
	}

	for _, runner := range runners {
		if runner.ID == errand.BuyerID {
			continue
		}
		if err := s.notifier.Notify(ctx, runner.ID, "New errand nearby", body, model.NotificationTypeErrand, data); err != nil {
			s.logger.Warn("failed to notify runner of new errand",
				zap.String("errand_id", errand.ID.String()),
				zap.String("runner_id", runner.ID.String()),
				zap.Error(err))
		}
	}
}

// GetByID retrieves one errand.
func (s *ErrandService) GetByID(ctx context.Context, id uuid.UUID) (*model.Errand, error) {
	return s.errands.GetByID(ctx, id)
}

// ListOpen returns errands awaiting a runner, newest first.
func (s *ErrandService) ListOpen(ctx context.Context, limit, offset int) ([]model.Errand, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.errands.ListOpen(ctx, limit, offset)
}
