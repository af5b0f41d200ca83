package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/redis"
)

// Narrative sections the generator knows how to write about.
const (
	SectionSummary      = "summary"
	SectionGaps         = "gaps"
	SectionMisalignment = "misalignment"
	SectionTraining     = "training"
)

var narrativeSections = map[string]bool{
	SectionSummary:      true,
	SectionGaps:         true,
	SectionMisalignment: true,
	SectionTraining:     true,
}

// Narrative generates prose commentary for one report section. The result is
// cached against a hash of the underlying stats, so the same data never pays
// for a second generation but a re-import always produces fresh prose.
func (s *Service) Narrative(ctx context.Context, generator contracts.NarrativeGenerator, section string) (string, error) {
	if generator == nil {
		return "", fmt.Errorf("narrative generation is not configured")
	}
	if !narrativeSections[section] {
		return "", fmt.Errorf("unknown narrative section %q", section)
	}

	stats, err := s.sectionStats(ctx, section)
	if err != nil {
		return "", err
	}

	hash, err := statsHash(stats)
	if err != nil {
		return "", err
	}

	var narrative string
	key := redis.NarrativeKey(section, hash)
	err = s.cachedNarrative(ctx, key, &narrative, func() (interface{}, error) {
		text, err := generator.GenerateNarrative(ctx, section, stats)
		if err != nil {
			return nil, fmt.Errorf("narrative generation failed: %w", err)
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return narrative, nil
}

func (s *Service) sectionStats(ctx context.Context, section string) (interface{}, error) {
	switch section {
	case SectionSummary:
		return s.Summary(ctx)
	case SectionGaps:
		return s.Gaps(ctx)
	case SectionMisalignment:
		return s.Misalignment(ctx)
	case SectionTraining:
		return s.Training(ctx)
	default:
		return nil, fmt.Errorf("unknown narrative section %q", section)
	}
}

func (s *Service) cachedNarrative(ctx context.Context, key string, dest *string, build func() (interface{}, error)) error {
	if s.cache == nil {
		value, err := build()
		if err != nil {
			return err
		}
		return assign(value, dest)
	}
	return s.cache.GetOrSet(ctx, key, dest, redis.TTLNarrative, build)
}

func statsHash(stats interface{}) (string, error) {
	data, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("failed to hash report stats: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}
