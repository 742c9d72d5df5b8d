package monitor

import (
	"context"
	"urlmonitor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProxyStore is the slice of the proxy module this service needs.
type ProxyStore interface {
	GetGeo(ctx context.Context, proxyID uuid.UUID) (string, error)
}

type Service struct {
	repo    *Repository
	proxies ProxyStore
	logger  *zerolog.Logger
}

func NewService(repo *Repository, proxies ProxyStore, logger *zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		proxies: proxies,
		logger:  logger,
	}
}

func (s *Service) CreateURL(ctx context.Context, cmd CreateURLCmd) (MonitoredURL, error) {
	const op string = "service.monitor.create_url"

	if cmd.CheckInterval == 0 {
		cmd.CheckInterval = DefaultCheckInterval
	}
	if cmd.CheckInterval < MinCheckInterval {
		return MonitoredURL{}, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: "check interval below minimum",
		}
	}

	id, err := s.repo.Create(ctx, cmd)
	if err != nil {
		return MonitoredURL{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetURL(ctx context.Context, urlID uuid.UUID) (MonitoredURL, error) {
	return s.repo.GetByID(ctx, urlID)
}

func (s *Service) GetAllURLs(ctx context.Context) ([]MonitoredURL, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) UpdateURL(ctx context.Context, m MonitoredURL) error {
	const op string = "service.monitor.update_url"

	if m.CheckInterval < MinCheckInterval {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: "check interval below minimum",
		}
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) DeleteURL(ctx context.Context, urlID uuid.UUID) error {
	return s.repo.Delete(ctx, urlID)
}

func (s *Service) History(ctx context.Context, urlID uuid.UUID, limit int) ([]URLCheck, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.History(ctx, urlID, limit)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// ProxyGeo resolves the geo tag of a URL's proxy for manual check results.
// An unset or vanished proxy simply yields the empty string.
func (s *Service) ProxyGeo(ctx context.Context, m MonitoredURL) string {
	if m.ProxyID == nil {
		return ""
	}
	geo, err := s.proxies.GetGeo(ctx, *m.ProxyID)
	if err != nil {
		return ""
	}
	return geo
}
