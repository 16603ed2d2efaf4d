package services

import (
	"time"

	"estate_manager/internal/logger"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressCache is the write-through cache for derived project progress.
// Implemented by the redis client; cache failures are logged, never fatal.
type ProgressCache interface {
	SetProjectProgress(projectID uint, progress int, ttl time.Duration) error
	GetProjectProgress(projectID uint) (int, error)
}

type ProgressService interface {
	// RecomputeProjectProgress re-derives and persists the project's
	// completion percentage from its milestones. tx may be nil, in which
	// case the repositories run against their base connection. Idempotent.
	RecomputeProjectProgress(tx *gorm.DB, projectID uint) (int, error)
	// GetProjectProgress reads the cached value, falling back to the row.
	GetProjectProgress(projectID uint) (int, error)
}

type progressService struct {
	projectRepo  repository.ProjectRepository
	scheduleRepo repository.ScheduleRepository
	cache        ProgressCache
	cacheTTL     time.Duration
	log          *logrus.Logger
}

func NewProgressService(
	projectRepo repository.ProjectRepository,
	scheduleRepo repository.ScheduleRepository,
	cache ProgressCache,
	cacheTTL time.Duration,
	log *logrus.Logger,
) ProgressService {
	return &progressService{
		projectRepo:  projectRepo,
		scheduleRepo: scheduleRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		log:          log,
	}
}

// ComputeProgress derives the completion percentage from milestone counts
// using round-half-up. A project with no milestones is at 0.
func ComputeProgress(completedCount, totalCount int) int {
	if totalCount == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(completedCount * 100)).
		Div(decimal.NewFromInt(int64(totalCount))).
		Round(0)
	return int(pct.IntPart())
}

func (s *progressService) RecomputeProjectProgress(tx *gorm.DB, projectID uint) (int, error) {
	projectRepo := s.projectRepo.WithTx(tx)
	scheduleRepo := s.scheduleRepo.WithTx(tx)

	if _, err := projectRepo.GetByID(projectID); err != nil {
		return 0, err
	}

	milestones, err := scheduleRepo.GetMilestonesByProject(projectID)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, m := range milestones {
		if m.Status == string(models.MilestoneCompleted) {
			completed++
		}
	}
	progress := ComputeProgress(completed, len(milestones))

	if err := projectRepo.UpdateProgress(projectID, progress); err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetProjectProgress(projectID, progress, s.cacheTTL); err != nil {
			logger.LogError(s.log, "services", "RecomputeProjectProgress", "progress cache write", projectID, err)
		}
	}

	return progress, nil
}

func (s *progressService) GetProjectProgress(projectID uint) (int, error) {
	if s.cache != nil {
		if progress, err := s.cache.GetProjectProgress(projectID); err == nil {
			return progress, nil
		}
	}
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return 0, err
	}
	return project.Progress, nil
}
