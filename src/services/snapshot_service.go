package services

import (
	"context"
	"time"

	"cryptoportfolio/src/models"
	"cryptoportfolio/src/repositories"
	"cryptoportfolio/src/schemas"
	"cryptoportfolio/src/utils"

	"github.com/sirupsen/logrus"
)

type SnapshotServiceI interface {
	RecordSnapshots(ctx context.Context, date time.Time) (*schemas.SnapshotRun, error)
	ListSnapshots(ctx context.Context, userID int64) ([]schemas.SnapshotResponse, error)
}

type SnapshotService struct {
	userRepo     repositories.UserRepository
	snapshotRepo repositories.SnapshotRepository
	portfolio    PortfolioServiceI
}

func NewSnapshotService(
	userRepo repositories.UserRepository,
	snapshotRepo repositories.SnapshotRepository,
	portfolio PortfolioServiceI,
) *SnapshotService {
	return &SnapshotService{
		userRepo:     userRepo,
		snapshotRepo: snapshotRepo,
		portfolio:    portfolio,
	}
}

// RecordSnapshots stores the total value of every user's portfolio on date. A
// user whose portfolio cannot be valued is logged and skipped.
func (s *SnapshotService) RecordSnapshots(ctx context.Context, date time.Time) (*schemas.SnapshotRun, error) {
	logger := utils.LoggerFromContext(ctx)
	day := utils.StartOfDay(date)

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	run := &schemas.SnapshotRun{Date: utils.FormatDate(day), Users: len(users)}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		total, err := s.portfolio.TotalValue(ctx, user.ID)
		if err == nil {
			err = s.snapshotRepo.Create(ctx, &models.PortfolioSnapshot{
				UserID:     user.ID,
				Date:       day,
				TotalValue: total,
			})
		}
		if err != nil {
			run.Failed++
			logger.WithFields(logrus.Fields{"user_id": user.ID, "date": run.Date}).
				WithError(err).Warn("portfolio snapshot failed")
			continue
		}
		run.Recorded++
	}

	logger.WithFields(logrus.Fields{
		"date":     run.Date,
		"users":    run.Users,
		"recorded": run.Recorded,
		"failed":   run.Failed,
	}).Info("portfolio snapshots recorded")
	return run, nil
}

func (s *SnapshotService) ListSnapshots(ctx context.Context, userID int64) ([]schemas.SnapshotResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]schemas.SnapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		response[i] = schemas.SnapshotResponse{
			Date:       utils.FormatDate(snap.Date),
			TotalValue: snap.TotalValue,
		}
	}
	return response, nil
}
