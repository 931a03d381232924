package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mosescsmith/cbb/internal/domain/alias"
)

// AliasService fronts the user-curated alias table. Writes happen only
// on explicit user action; last write wins.
type AliasService struct {
	repo alias.Repository
}

func NewAliasService(repo alias.Repository) *AliasService {
	return &AliasService{repo: repo}
}

func (s *AliasService) Set(ctx context.Context, rawName, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "AliasService.Set")
	defer span.End()

	rawName = strings.TrimSpace(rawName)
	teamID = strings.TrimSpace(teamID)
	if rawName == "" || teamID == "" {
		return fmt.Errorf("%w: raw name and team id are required", ErrInvalidInput)
	}
	if err := s.repo.Set(ctx, rawName, teamID); err != nil {
		return fmt.Errorf("set alias: %w", err)
	}
	return nil
}

func (s *AliasService) Remove(ctx context.Context, rawName string) error {
	ctx, span := startUsecaseSpan(ctx, "AliasService.Remove")
	defer span.End()

	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return fmt.Errorf("%w: raw name is required", ErrInvalidInput)
	}
	if err := s.repo.Remove(ctx, rawName); err != nil {
		return fmt.Errorf("remove alias: %w", err)
	}
	return nil
}

func (s *AliasService) List(ctx context.Context) (alias.Mapping, error) {
	ctx, span := startUsecaseSpan(ctx, "AliasService.List")
	defer span.End()

	mapping, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return mapping, nil
}
