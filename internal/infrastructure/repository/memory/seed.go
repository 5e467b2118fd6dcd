package memory

import (
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedTables is a small consistent dataset: three clubs, three fixtures
// among them and a handful of players with appearances and events.
func SeedTables() Tables {
	return Tables{
		Players: []player.Player{
			{ID: 1, Name: "Lionel Ortega", Position: player.PositionAttack},
			{ID: 2, Name: "Marco Silva", Position: player.PositionAttack},
			{ID: 3, Name: "Tomas Ruiz", Position: player.PositionMidfield},
			{ID: 4, Name: "Iker Sanz", Position: player.PositionDefender},
		},
		Appearances: []player.Appearance{
			{PlayerID: 1, PlayerName: "Lionel Ortega", GameID: 100, Date: day(2023, 1, 1), Goals: 1, Assists: 0, MinutesPlayed: 90},
			{PlayerID: 1, PlayerName: "Lionel Ortega", GameID: 101, Date: day(2023, 1, 8), Goals: 2, Assists: 1, MinutesPlayed: 90},
			{PlayerID: 1, PlayerName: "Lionel Ortega", GameID: 102, Date: day(2023, 3, 15), Goals: 0, Assists: 1, MinutesPlayed: 70},
			{PlayerID: 2, PlayerName: "Marco Silva", GameID: 100, Date: day(2023, 1, 1), Goals: 0, Assists: 1, MinutesPlayed: 80},
			{PlayerID: 2, PlayerName: "Marco Silva", GameID: 102, Date: day(2023, 3, 15), Goals: 1, Assists: 0, MinutesPlayed: 90},
			{PlayerID: 3, PlayerName: "Tomas Ruiz", GameID: 101, Date: day(2023, 1, 8), Goals: 0, Assists: 2, MinutesPlayed: 90},
		},
		Events: []event.GameEvent{
			{Type: event.TypeGoals, PlayerID: 1, Minute: 5, GameID: 100},
			{Type: event.TypeGoals, PlayerID: 1, Minute: 65, GameID: 101},
			{Type: event.TypeCards, PlayerID: 1, Minute: 69, GameID: 101},
			{Type: event.TypeCards, PlayerID: 3, Minute: 62, GameID: 101},
			{Type: event.TypeGoals, PlayerID: 2, Minute: 88, GameID: 102},
			{Type: event.TypeSubstitutions, PlayerID: 4, Minute: 60, GameID: 102},
		},
		Matches: []match.Match{
			{Date: day(2023, 1, 1), HomeClubID: 1, AwayClubID: 2, HomeClubGoals: 2, AwayClubGoals: 1},
			{Date: day(2023, 1, 8), HomeClubID: 2, AwayClubID: 3, HomeClubGoals: 0, AwayClubGoals: 0},
			{Date: day(2023, 1, 15), HomeClubID: 3, AwayClubID: 1, HomeClubGoals: 1, AwayClubGoals: 3},
		},
		Clubs: []club.Club{
			{ID: 1, Name: "Real Norte", URL: "https://www.transfermarkt.co.uk/real-norte/startseite/verein/1"},
			{ID: 2, Name: "Atletico Sur", URL: "https://www.transfermarkt.co.uk/atletico-sur/startseite/verein/2"},
		},
	}
}
