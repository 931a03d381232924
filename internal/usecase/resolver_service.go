package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// Match is the outcome of a successful resolution. Ephemeral: produced
// per call, never persisted.
type Match struct {
	ResolvedID  string
	MatchedName string
	Confidence  float64
}

// Suggestion is one ranked candidate returned when no strategy
// matched.
type Suggestion struct {
	TeamID     string
	TeamName   string
	Similarity float64
	GameCount  int
}

// Resolution carries either a match or the ranked suggestion list.
type Resolution struct {
	Matched     bool
	Match       Match
	Suggestions []Suggestion
}

// ResolverConfig holds the fuzzy-match knobs. The thresholds are
// empirically chosen; override rather than re-derive.
type ResolverConfig struct {
	MatchThreshold  float64
	SuggestionFloor float64
	SuggestionLimit int
}

func (c ResolverConfig) normalized() ResolverConfig {
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		c.MatchThreshold = namematch.DefaultMatchThreshold
	}
	if c.SuggestionFloor <= 0 || c.SuggestionFloor >= 1 {
		c.SuggestionFloor = 0.4
	}
	if c.SuggestionLimit <= 0 {
		c.SuggestionLimit = 5
	}
	return c
}

type resolveStrategy struct {
	name string
	fn   func(ctx context.Context, rawID, rawName string) (Match, bool, error)
}

// ResolverService reconciles (raw id, raw name) pairs from any source
// against the cached team set, trying strategies in order and stopping
// at the first hit.
type ResolverService struct {
	statsRepo  teamstats.Repository
	aliasRepo  alias.Repository
	cfg        ResolverConfig
	strategies []resolveStrategy
}

func NewResolverService(statsRepo teamstats.Repository, aliasRepo alias.Repository, cfg ResolverConfig) *ResolverService {
	s := &ResolverService{
		statsRepo: statsRepo,
		aliasRepo: aliasRepo,
		cfg:       cfg.normalized(),
	}
	s.strategies = []resolveStrategy{
		{name: "exact-id", fn: s.resolveExactID},
		{name: "alias-id", fn: s.resolveAliasID},
		{name: "variants", fn: s.resolveVariants},
		{name: "fuzzy-scan", fn: s.resolveFuzzy},
	}
	return s
}

// Resolve runs the strategy pipeline. It only errors on structurally
// invalid input or a failing repository; an unmatched name is a normal
// outcome carrying suggestions.
func (s *ResolverService) Resolve(ctx context.Context, rawID, rawName string) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "ResolverService.Resolve")
	defer span.End()

	rawID = strings.TrimSpace(rawID)
	rawName = strings.TrimSpace(rawName)
	if rawID == "" && rawName == "" {
		return Resolution{}, fmt.Errorf("%w: team id or name is required", ErrInvalidInput)
	}

	for _, strategy := range s.strategies {
		match, ok, err := strategy.fn(ctx, rawID, rawName)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve via %s: %w", strategy.name, err)
		}
		if ok {
			return Resolution{Matched: true, Match: match}, nil
		}
	}

	suggestions, err := s.Suggestions(ctx, rawName)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Suggestions: suggestions}, nil
}

// Suggestions ranks cached teams by similarity to rawName, dropping
// anything at or below the floor, most similar first, ties broken by
// games on file.
func (s *ResolverService) Suggestions(ctx context.Context, rawName string) ([]Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "ResolverService.Suggestions")
	defer span.End()

	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return nil, nil
	}

	refs, err := s.statsRepo.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cached teams: %w", err)
	}

	normalized := namematch.Normalize(rawName)
	suggestions := make([]Suggestion, 0, len(refs))
	for _, ref := range refs {
		sim := namematch.Similarity(normalized, namematch.Normalize(ref.TeamName))
		if sim <= s.cfg.SuggestionFloor {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			TeamID:     ref.TeamID,
			TeamName:   ref.TeamName,
			Similarity: sim,
			GameCount:  ref.GameCount,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		return suggestions[i].GameCount > suggestions[j].GameCount
	})
	if len(suggestions) > s.cfg.SuggestionLimit {
		suggestions = suggestions[:s.cfg.SuggestionLimit]
	}
	return suggestions, nil
}

func (s *ResolverService) resolveExactID(ctx context.Context, rawID, _ string) (Match, bool, error) {
	if rawID == "" {
		return Match{}, false, nil
	}
	cached, found, err := s.statsRepo.Get(ctx, rawID)
	if err != nil {
		return Match{}, false, err
	}
	if !found {
		return Match{}, false, nil
	}
	return Match{ResolvedID: cached.TeamID, MatchedName: cached.TeamName, Confidence: 1.0}, true, nil
}

func (s *ResolverService) resolveAliasID(ctx context.Context, rawID, _ string) (Match, bool, error) {
	if rawID == "" {
		return Match{}, false, nil
	}
	teamID, found, err := s.aliasRepo.Get(ctx, rawID)
	if err != nil {
		return Match{}, false, err
	}
	if !found {
		return Match{}, false, nil
	}
	cached, found, err := s.statsRepo.Get(ctx, teamID)
	if err != nil {
		return Match{}, false, err
	}
	if !found {
		return Match{}, false, nil
	}
	return Match{ResolvedID: cached.TeamID, MatchedName: cached.TeamName, Confidence: 0.95}, true, nil
}

func (s *ResolverService) resolveVariants(ctx context.Context, _, rawName string) (Match, bool, error) {
	if rawName == "" {
		return Match{}, false, nil
	}
	for _, variant := range namematch.Variants(rawName) {
		cached, found, err := s.statsRepo.Get(ctx, variant)
		if err != nil {
			return Match{}, false, err
		}
		if found {
			return Match{ResolvedID: cached.TeamID, MatchedName: cached.TeamName, Confidence: 0.9}, true, nil
		}

		teamID, found, err := s.aliasRepo.Get(ctx, variant)
		if err != nil {
			return Match{}, false, err
		}
		if !found {
			continue
		}
		cached, found, err = s.statsRepo.Get(ctx, teamID)
		if err != nil {
			return Match{}, false, err
		}
		if found {
			return Match{ResolvedID: cached.TeamID, MatchedName: cached.TeamName, Confidence: 0.9}, true, nil
		}
	}
	return Match{}, false, nil
}

func (s *ResolverService) resolveFuzzy(ctx context.Context, _, rawName string) (Match, bool, error) {
	if rawName == "" {
		return Match{}, false, nil
	}
	refs, err := s.statsRepo.ListRefs(ctx)
	if err != nil {
		return Match{}, false, err
	}

	normalized := namematch.Normalize(rawName)
	best := Match{}
	for _, ref := range refs {
		if !namematch.IsLikelyMatch(rawName, ref.TeamName, s.cfg.MatchThreshold) {
			continue
		}
		confidence := namematch.Similarity(normalized, namematch.Normalize(ref.TeamName))
		if strings.EqualFold(rawName, ref.TeamName) {
			confidence = 1.0
		}
		if confidence > best.Confidence {
			best = Match{ResolvedID: ref.TeamID, MatchedName: ref.TeamName, Confidence: confidence}
		}
	}
	if best.ResolvedID == "" {
		return Match{}, false, nil
	}
	return best, true, nil
}
