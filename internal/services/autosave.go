package services

import (
	"fmt"

	"github.com/pkowalski/codeplay/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// AutoSaveService snapshots the workspace buffers on a fixed period. It is
// independent of the preview refresh path: editing recomposes eagerly,
// snapshotting happens only on the timer.
type AutoSaveService struct {
	workspace     *Workspace
	intervalSecs  int
	cronScheduler *cron.Cron
}

func NewAutoSaveService(workspace *Workspace, intervalSecs int) *AutoSaveService {
	if intervalSecs <= 0 {
		intervalSecs = 30
	}
	return &AutoSaveService{
		workspace:    workspace,
		intervalSecs: intervalSecs,
	}
}

func (s *AutoSaveService) Start() {
	s.cronScheduler = cron.New()

	spec := fmt.Sprintf("@every %ds", s.intervalSecs)
	_, err := s.cronScheduler.AddFunc(spec, func() {
		if err := s.workspace.Snapshot(); err != nil {
			logger.Error().Err(err).Msg("auto-save snapshot failed")
			return
		}
		logger.Debug().Msg("auto-saved workspace")
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule auto-save")
		return
	}

	s.cronScheduler.Start()
	logger.Infof("Auto-save scheduler started (every %ds)", s.intervalSecs)
}

func (s *AutoSaveService) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}
