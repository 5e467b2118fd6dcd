package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
)

// CrestResolver turns a club profile URL into a crest image URL, or "" when
// none can be found.
type CrestResolver interface {
	CrestURL(ctx context.Context, profileURL string) string
}

type ClubService struct {
	clubs  club.Repository
	crests CrestResolver
	logger *logging.Logger
}

func NewClubService(clubs club.Repository, crests CrestResolver, logger *logging.Logger) *ClubService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ClubService{clubs: clubs, crests: crests, logger: logger}
}

// Name returns the club's display name, "Equipo <id>" when it is unknown or
// the clubs table is absent.
func (s *ClubService) Name(ctx context.Context, clubID int64) (string, error) {
	c, ok, err := s.find(ctx, clubID)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(c.Name) == "" {
		return club.FallbackName(clubID), nil
	}
	return c.Name, nil
}

// Crest is a best-effort lookup; every failure yields "".
func (s *ClubService) Crest(ctx context.Context, clubID int64) string {
	if s.crests == nil {
		return ""
	}
	c, ok, err := s.find(ctx, clubID)
	if err != nil {
		s.logger.WarnContext(ctx, "club lookup for crest failed", "club_id", clubID, "error", err)
		return ""
	}
	if !ok || strings.TrimSpace(c.URL) == "" {
		return ""
	}
	return s.crests.CrestURL(ctx, c.URL)
}

func (s *ClubService) find(ctx context.Context, clubID int64) (club.Club, bool, error) {
	clubs, err := s.clubs.ListClubs(ctx)
	if errors.Is(err, ErrMissingInput) {
		s.logger.DebugContext(ctx, "clubs table unavailable", "error", err)
		return club.Club{}, false, nil
	}
	if err != nil {
		return club.Club{}, false, fmt.Errorf("list clubs: %w", err)
	}
	c, ok := club.Find(clubs, clubID)
	return c, ok, nil
}
