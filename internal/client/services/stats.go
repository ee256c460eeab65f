package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

const msgStatsForbidden = "no permission to view detailed statistics"

// StatsService fetches the task statistics summary on demand.
type StatsService interface {
	RefreshStats(ctx context.Context)
	Stats() *models.TaskStats
	Loading() bool
	Error() string
	ClearError()
}

type statsService struct {
	opStatus

	client client.Client
	log    logging.Logger

	mu    sync.RWMutex
	stats *models.TaskStats
}

func NewStatsService(c client.Client, log logging.Logger) StatsService {
	return &statsService{client: c, log: log}
}

func (s *statsService) RefreshStats(ctx context.Context) {
	s.begin()
	defer s.end()

	res := client.RequestSafe[*models.TaskStats](ctx, s.client, http.MethodGet, "/tasks/stats", nil)
	if !res.OK || res.Data == nil {
		msg := res.Err
		switch {
		case res.Kind == client.KindForbidden:
			msg = msgStatsForbidden
		case res.OK:
			msg = "server returned no statistics"
		}
		s.log.Warn(ctx, "refresh stats failed", "error", msg)
		s.fail(msg)
		return
	}

	s.mu.Lock()
	s.stats = res.Data
	s.mu.Unlock()
}

// Stats returns the last fetched summary, or nil if none was fetched.
func (s *statsService) Stats() *models.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}
