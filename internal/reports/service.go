package reports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
	"github.com/kumul-digital/capdash/backend/pkg/redis"
)

// Service builds report aggregates from the stores. Aggregates are cached
// briefly; a committed import invalidates nothing explicitly because the
// cache TTL is short enough for an import-then-report workflow.
type Service struct {
	officers      contracts.OfficerStore
	establishment contracts.EstablishmentStore
	cache         *redis.Cache
	logger        *logger.Logger
}

func NewService(
	officers contracts.OfficerStore,
	establishment contracts.EstablishmentStore,
	cache *redis.Cache,
	log *logger.Logger,
) *Service {
	return &Service{
		officers:      officers,
		establishment: establishment,
		cache:         cache,
		logger:        log,
	}
}

// Summary returns the dashboard aggregate.
func (s *Service) Summary(ctx context.Context) (*SummaryReport, error) {
	var report SummaryReport
	err := s.cached(ctx, redis.ReportKey("summary"), &report, func() (interface{}, error) {
		officers, positions, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		return BuildSummary(officers, positions), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Gaps returns the per-question and per-division gap analysis.
func (s *Service) Gaps(ctx context.Context) (*GapReport, error) {
	var report GapReport
	err := s.cached(ctx, redis.ReportKey("gaps"), &report, func() (interface{}, error) {
		officers, err := s.officers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load officers: %w", err)
		}
		return BuildGapReport(officers), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Misalignment lists officers whose appraisal and self-assessment disagree.
func (s *Service) Misalignment(ctx context.Context) ([]MisalignedOfficer, error) {
	var report []MisalignedOfficer
	err := s.cached(ctx, redis.ReportKey("misalignment"), &report, func() (interface{}, error) {
		officers, err := s.officers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load officers: %w", err)
		}
		return BuildMisalignmentReport(officers), nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Training returns the reported-needs tallies.
func (s *Service) Training(ctx context.Context) (*TrainingReport, error) {
	var report TrainingReport
	err := s.cached(ctx, redis.ReportKey("training"), &report, func() (interface{}, error) {
		officers, err := s.officers.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load officers: %w", err)
		}
		return BuildTrainingReport(officers), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Coverage compares questionnaire returns against the establishment register.
func (s *Service) Coverage(ctx context.Context) (*CoverageReport, error) {
	var report CoverageReport
	err := s.cached(ctx, redis.ReportKey("coverage"), &report, func() (interface{}, error) {
		officers, positions, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		return BuildCoverageReport(officers, positions), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) load(ctx context.Context) ([]contracts.OfficerRecord, []contracts.EstablishmentRecord, error) {
	officers, err := s.officers.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load officers: %w", err)
	}
	positions, err := s.establishment.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load establishment positions: %w", err)
	}
	return officers, positions, nil
}

func (s *Service) cached(ctx context.Context, key string, dest interface{}, build func() (interface{}, error)) error {
	if s.cache == nil {
		value, err := build()
		if err != nil {
			return err
		}
		return assign(value, dest)
	}
	return s.cache.GetOrSet(ctx, key, dest, redis.TTLShort, build)
}

// assign copies a built value into the caller's destination the same way a
// cache round trip would, so cached and uncached paths see identical shapes.
func assign(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
