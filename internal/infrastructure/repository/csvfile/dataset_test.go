package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

func writeFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}

func TestDataset_ListPlayers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "players.csv",
		"\ufeffplayer_id,name,position,extra",
		"1, Ana ,Attack,x",
		"2,Benito,Midfield,y",
		"",
	)

	got, err := NewDataset(dir, nil).ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Midfield", got[1].Position)
}

func TestDataset_MissingColumnsNamed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "players.csv", "player_id,name", "1,Ana")
	writeFile(t, dir, "games.csv", "date,home_club_id", "2024-01-01,1")

	_, err := NewDataset(dir, nil).ListPlayers(context.Background())
	require.ErrorIs(t, err, usecase.ErrSchema)
	assert.Contains(t, err.Error(), "players.csv must contain the columns: player_id, name, position")
	assert.Contains(t, err.Error(), "missing: position")

	_, err = NewDataset(dir, nil).ListMatches(context.Background())
	require.ErrorIs(t, err, usecase.ErrSchema)
	assert.Contains(t, err.Error(), "games.csv")
	assert.Contains(t, err.Error(), "away_club_id, home_club_goals, away_club_goals)")
}

func TestDataset_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewDataset(t.TempDir(), nil).ListAppearances(context.Background())
	require.ErrorIs(t, err, usecase.ErrMissingInput)
	assert.Contains(t, err.Error(), "appearances.csv")
}

func TestDataset_EmptyFileIsSchemaError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clubs.csv"), nil, 0o600))

	_, err := NewDataset(dir, nil).ListClubs(context.Background())
	assert.ErrorIs(t, err, usecase.ErrSchema)
}

func TestDataset_ListAppearances(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "appearances.csv",
		"game_id,player_id,player_name,date,goals,assists,minutes_played",
		"10,1,Ana,2024-02-03,2,,90",
		"11,1,Ana,2024-03-01 00:00:00,0,1,45",
	)

	got, err := NewDataset(dir, nil).ListAppearances(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, 2, got[0].Goals)
	assert.Equal(t, 0, got[0].Assists)
	assert.Equal(t, int64(11), got[1].GameID)
	assert.Equal(t, 45, got[1].MinutesPlayed)
}

func TestDataset_TypeErrorsNameLineAndColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		lines   []string
		list    func(*Dataset) error
		wantMsg string
	}{
		{
			name:    "non numeric minute",
			file:    "game_events.csv",
			lines:   []string{"type,player_id,minute,game_id", "Goals,1,5,1", "Cards,1,abc,1"},
			list:    func(d *Dataset) error { _, err := d.ListEvents(context.Background()); return err },
			wantMsg: "game_events.csv line 3 column minute",
		},
		{
			name:    "negative minute",
			file:    "game_events.csv",
			lines:   []string{"type,player_id,minute,game_id", "Goals,1,-1,1"},
			list:    func(d *Dataset) error { _, err := d.ListEvents(context.Background()); return err },
			wantMsg: "game_events.csv line 2 column minute",
		},
		{
			name:    "minute beyond any match",
			file:    "game_events.csv",
			lines:   []string{"type,player_id,minute,game_id", "Goals,1,5,1", "Goals,1,1e300,1"},
			list:    func(d *Dataset) error { _, err := d.ListEvents(context.Background()); return err },
			wantMsg: "game_events.csv line 3 column minute",
		},
		{
			name:    "bad date",
			file:    "games.csv",
			lines:   []string{"date,home_club_id,away_club_id,home_club_goals,away_club_goals", "03/01/2024,1,2,1,0"},
			list:    func(d *Dataset) error { _, err := d.ListMatches(context.Background()); return err },
			wantMsg: "games.csv line 2 column date",
		},
		{
			name:    "bad id",
			file:    "clubs.csv",
			lines:   []string{"club_id,name,url", "x1,Club,/a"},
			list:    func(d *Dataset) error { _, err := d.ListClubs(context.Background()); return err },
			wantMsg: "clubs.csv line 2 column club_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.lines...)

			err := tt.list(NewDataset(dir, nil))
			require.Error(t, err)
			assert.True(t, errors.Is(err, usecase.ErrSchema))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDataset_ListEventsAcceptsFractionalMinutes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "game_events.csv", "game_id,minute,type,player_id", "1,0,Goals,4", "1,45.0,Cards,4")

	got, err := NewDataset(dir, nil).ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, event.TypeGoals, got[0].Type)
	assert.Equal(t, 45.0, got[1].Minute)
}

func TestDataset_ListMatchesSkipsUnscored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "games.csv",
		"date,home_club_id,away_club_id,home_club_goals,away_club_goals",
		"2023-01-01,1,2,2,1",
		"2023-01-08,2,3,,",
		"2023-01-15,3,1,1.0,3",
	)

	got, err := NewDataset(dir, nil).ListMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].HomeClubGoals)
	assert.Equal(t, int64(1), got[1].AwayClubID)
}
