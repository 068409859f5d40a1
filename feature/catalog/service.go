package catalog

import (
	"rom-curator/feature/catalog/models"
	"rom-curator/feature/catalog/reconcile"

	"go.uber.org/zap"
)

// Service handles catalog queries and curation operations.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Stats returns per-entity row counts.
func (s *Service) Stats() (*Stats, error) {
	return s.store.Stats()
}

// SearchReleases returns releases whose title contains the substring.
func (s *Service) SearchReleases(query string, limit int) ([]models.Release, error) {
	return s.store.SearchReleases(query, limit)
}

// GetRelease returns one release with its media, or nil when absent.
func (s *Service) GetRelease(id int64) (*models.Release, error) {
	return s.store.FindReleaseByID(id)
}

// LookupMedia finds media rows by CRC32, SHA1, or serial. Exactly one
// criterion is used, in that order of preference.
func (s *Service) LookupMedia(crc, sha1, serial string) ([]models.Media, error) {
	switch {
	case crc != "":
		return s.store.FindMediaByCRC(crc)
	case sha1 != "":
		return s.store.FindMediaBySHA1(sha1)
	default:
		return s.store.FindMediaBySerial(serial)
	}
}

// ListDisagreements returns disagreement rows, optionally unresolved only.
func (s *Service) ListDisagreements(unresolvedOnly bool) ([]models.Disagreement, error) {
	return s.store.ListDisagreements(unresolvedOnly)
}

// ResolveDisagreement marks one disagreement resolved.
func (s *Service) ResolveDisagreement(id int64) error {
	return s.store.ResolveDisagreement(id)
}

// Reconcile runs the work deduplication engine.
func (s *Service) Reconcile(opts reconcile.Options) (*reconcile.Plan, error) {
	return reconcile.NewEngine(s.store.DB(), s.logger).Run(opts)
}
