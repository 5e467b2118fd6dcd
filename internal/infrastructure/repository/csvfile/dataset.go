package csvfile

import (
	"context"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
)

// Dataset reads the flat input files of one data directory. Every call
// re-reads its file so results always reflect the directory contents.
type Dataset struct {
	dir    string
	logger *logging.Logger
}

func NewDataset(dir string, logger *logging.Logger) *Dataset {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dataset{dir: dir, logger: logger}
}

func (d *Dataset) ListPlayers(ctx context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0)
	err := read(ctx, d.dir, playersTable, func(r *row) error {
		out = append(out, player.Player{
			ID:       r.id("player_id"),
			Name:     r.raw("name"),
			Position: r.raw("position"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "players loaded", "file", playersTable.file, "rows", len(out))
	return out, nil
}

func (d *Dataset) ListAppearances(ctx context.Context) ([]player.Appearance, error) {
	out := make([]player.Appearance, 0)
	err := read(ctx, d.dir, appearancesTable, func(r *row) error {
		out = append(out, player.Appearance{
			PlayerID:      r.id("player_id"),
			PlayerName:    r.raw("player_name"),
			GameID:        r.id("game_id"),
			Date:          r.date("date"),
			Goals:         r.count("goals"),
			Assists:       r.count("assists"),
			MinutesPlayed: r.count("minutes_played"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "appearances loaded", "file", appearancesTable.file, "rows", len(out))
	return out, nil
}

func (d *Dataset) ListEvents(ctx context.Context) ([]event.GameEvent, error) {
	out := make([]event.GameEvent, 0)
	err := read(ctx, d.dir, eventsTable, func(r *row) error {
		out = append(out, event.GameEvent{
			Type:     event.Type(r.raw("type")),
			PlayerID: r.id("player_id"),
			GameID:   r.id("game_id"),
			Minute:   r.minute("minute"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "game events loaded", "file", eventsTable.file, "rows", len(out))
	return out, nil
}

// ListMatches skips fixtures without a recorded score.
func (d *Dataset) ListMatches(ctx context.Context) ([]match.Match, error) {
	out := make([]match.Match, 0)
	skipped := 0
	err := read(ctx, d.dir, gamesTable, func(r *row) error {
		home, homeOK := r.optionalCount("home_club_goals")
		away, awayOK := r.optionalCount("away_club_goals")
		m := match.Match{
			Date:          r.date("date"),
			HomeClubID:    r.id("home_club_id"),
			AwayClubID:    r.id("away_club_id"),
			HomeClubGoals: home,
			AwayClubGoals: away,
		}
		if !homeOK || !awayOK {
			skipped++
			return nil
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "games loaded", "file", gamesTable.file, "rows", len(out), "unscored", skipped)
	return out, nil
}

func (d *Dataset) ListClubs(ctx context.Context) ([]club.Club, error) {
	out := make([]club.Club, 0)
	err := read(ctx, d.dir, clubsTable, func(r *row) error {
		out = append(out, club.Club{
			ID:   r.id("club_id"),
			Name: r.raw("name"),
			URL:  r.raw("url"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "clubs loaded", "file", clubsTable.file, "rows", len(out))
	return out, nil
}
