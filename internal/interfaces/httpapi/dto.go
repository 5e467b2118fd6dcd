package httpapi

import (
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/forecast"
	"github.com/riskibarqy/football-analytics/internal/domain/interval"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/outcome"
	"github.com/riskibarqy/football-analytics/internal/domain/similarity"
)

const dateLayout = "2006-01-02"

type forecastDTO struct {
	PlayerID   int64               `json:"player_id"`
	PlayerName string              `json:"player_name,omitempty"`
	YearsBack  int                 `json:"years_back"`
	Found      bool                `json:"found"`
	Summary    *forecastSummaryDTO `json:"summary,omitempty"`
	Goals      *projectionDTO      `json:"goals,omitempty"`
	Assists    *projectionDTO      `json:"assists,omitempty"`
}

type forecastSummaryDTO struct {
	TotalGoals         int     `json:"total_goals"`
	TotalAssists       int     `json:"total_assists"`
	MatchesPlayed      int     `json:"matches_played"`
	AvgGoalsPerMonth   float64 `json:"avg_goals_per_month"`
	AvgAssistsPerMonth float64 `json:"avg_assists_per_month"`
}

type projectionDTO struct {
	History  []pointDTO `json:"history"`
	Forecast []pointDTO `json:"forecast"`
}

type pointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type playerStatsDTO struct {
	PlayerID       int64   `json:"player_id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	Minutes        int     `json:"minutes"`
	Appearances    int     `json:"appearances"`
	GoalsPerGame   float64 `json:"goals_per_game"`
	AssistsPerGame float64 `json:"assists_per_game"`
	MinutesPerGame float64 `json:"minutes_per_game"`
	Cluster        int     `json:"cluster"`
}

type recommendationDTO struct {
	playerStatsDTO
	Distance *float64 `json:"distance,omitempty"`
}

type similarPlayersDTO struct {
	PlayerID        int64               `json:"player_id"`
	Positions       []string            `json:"positions"`
	Strategy        string              `json:"strategy"`
	Found           bool                `json:"found"`
	Reference       *playerStatsDTO     `json:"reference,omitempty"`
	Recommendations []recommendationDTO `json:"recommendations"`
	Pool            []playerStatsDTO    `json:"pool"`
}

type intervalRowDTO struct {
	PlayerID    int64   `json:"player_id"`
	Name        string  `json:"name,omitempty"`
	Position    string  `json:"position,omitempty"`
	Goals       int     `json:"goals"`
	Cards       int     `json:"cards"`
	Cluster     int     `json:"cluster"`
	ScaledGoals float64 `json:"scaled_goals"`
	ScaledCards float64 `json:"scaled_cards"`
}

type centroidDTO struct {
	Cluster int     `json:"cluster"`
	Goals   float64 `json:"goals"`
	Cards   float64 `json:"cards"`
}

type intervalDTO struct {
	Interval  string           `json:"interval"`
	Found     bool             `json:"found"`
	Rows      []intervalRowDTO `json:"rows"`
	Centroids []centroidDTO    `json:"centroids"`
	Inertia   float64          `json:"inertia"`
}

type rollingFormDTO struct {
	GoalsFor     float64 `json:"goals_for"`
	GoalsAgainst float64 `json:"goals_against"`
	GoalDiff     float64 `json:"goal_diff"`
	WinRate      float64 `json:"win_rate"`
}

type teamSideDTO struct {
	TeamID   int64          `json:"team_id"`
	Name     string         `json:"name"`
	CrestURL string         `json:"crest_url,omitempty"`
	AsOf     string         `json:"as_of"`
	Form     rollingFormDTO `json:"form"`
}

type probabilitiesDTO struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

type modelInfoDTO struct {
	ID              string  `json:"id"`
	TrainedAt       string  `json:"trained_at"`
	TrainRows       int     `json:"train_rows"`
	HoldoutRows     int     `json:"holdout_rows"`
	HoldoutAccuracy float64 `json:"holdout_accuracy"`
}

type predictionDTO struct {
	Home          teamSideDTO      `json:"home"`
	Away          teamSideDTO      `json:"away"`
	Outcome       int              `json:"outcome"`
	Label         string           `json:"label"`
	Probabilities probabilitiesDTO `json:"probabilities"`
	Model         modelInfoDTO     `json:"model"`
}

type teamMatchDTO struct {
	Date         string         `json:"date"`
	OpponentID   int64          `json:"opponent_id"`
	IsHome       bool           `json:"is_home"`
	GoalsFor     int            `json:"goals_for"`
	GoalsAgainst int            `json:"goals_against"`
	GoalDiff     int            `json:"goal_diff"`
	Result       string         `json:"result"`
	Form         rollingFormDTO `json:"form"`
}

type teamFormDTO struct {
	TeamID  int64          `json:"team_id"`
	Name    string         `json:"name"`
	Matches []teamMatchDTO `json:"matches"`
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func seriesToDTO(series forecast.Series) []pointDTO {
	out := make([]pointDTO, 0, len(series))
	for _, p := range series {
		out = append(out, pointDTO{Date: formatDate(p.Date), Value: p.Value})
	}
	return out
}

func projectionToDTO(p forecast.Projection) *projectionDTO {
	return &projectionDTO{History: seriesToDTO(p.History), Forecast: seriesToDTO(p.Forecast)}
}

func forecastToDTO(v forecast.PlayerForecast) forecastDTO {
	return forecastDTO{
		PlayerID:   v.PlayerID,
		PlayerName: v.PlayerName,
		YearsBack:  v.YearsBack,
		Found:      true,
		Summary: &forecastSummaryDTO{
			TotalGoals:         v.Summary.TotalGoals,
			TotalAssists:       v.Summary.TotalAssists,
			MatchesPlayed:      v.Summary.MatchesPlayed,
			AvgGoalsPerMonth:   v.Summary.AvgGoalsPerMonth,
			AvgAssistsPerMonth: v.Summary.AvgAssistsPerMonth,
		},
		Goals:   projectionToDTO(v.Goals),
		Assists: projectionToDTO(v.Assists),
	}
}

func playerStatsToDTO(v similarity.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		PlayerID:       v.PlayerID,
		Name:           v.Name,
		Position:       v.Position,
		Goals:          v.Goals,
		Assists:        v.Assists,
		Minutes:        v.Minutes,
		Appearances:    v.Appearances,
		GoalsPerGame:   v.GoalsPerGame,
		AssistsPerGame: v.AssistsPerGame,
		MinutesPerGame: v.MinutesPerGame,
		Cluster:        v.Cluster,
	}
}

func similarityToDTO(req similarPlayersRequest, strategy similarity.RankStrategy, v similarity.Result, found bool) similarPlayersDTO {
	out := similarPlayersDTO{
		PlayerID:        req.PlayerID,
		Positions:       req.Positions,
		Strategy:        string(strategy),
		Found:           found,
		Recommendations: make([]recommendationDTO, 0, len(v.Recommendations)),
		Pool:            make([]playerStatsDTO, 0, len(v.Stats)),
	}
	if found {
		ref := playerStatsToDTO(v.Reference)
		out.Reference = &ref
	}
	for _, r := range v.Recommendations {
		out.Recommendations = append(out.Recommendations, recommendationDTO{
			playerStatsDTO: playerStatsToDTO(r.PlayerStats),
			Distance:       r.Distance,
		})
	}
	for _, s := range v.Stats {
		out.Pool = append(out.Pool, playerStatsToDTO(s))
	}
	return out
}

func intervalToDTO(v interval.Result) intervalDTO {
	out := intervalDTO{
		Interval:  v.Interval,
		Found:     true,
		Rows:      make([]intervalRowDTO, 0, len(v.Rows)),
		Centroids: make([]centroidDTO, 0, len(v.Centroids)),
		Inertia:   v.Inertia,
	}
	for i, row := range v.Rows {
		dto := intervalRowDTO{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Position: row.Position,
			Goals:    row.Goals,
			Cards:    row.Cards,
			Cluster:  row.Cluster,
		}
		if i < len(v.Scaled) && len(v.Scaled[i]) == 2 {
			dto.ScaledGoals, dto.ScaledCards = v.Scaled[i][0], v.Scaled[i][1]
		}
		out.Rows = append(out.Rows, dto)
	}
	for i, c := range v.Centroids {
		out.Centroids = append(out.Centroids, centroidDTO{Cluster: i, Goals: c.Goals, Cards: c.Cards})
	}
	return out
}

func rollingFormToDTO(v match.RollingForm) rollingFormDTO {
	return rollingFormDTO{
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		GoalDiff:     v.GoalDiff,
		WinRate:      v.WinRate,
	}
}

func teamSideToDTO(record match.TeamRecord, name, crest string) teamSideDTO {
	return teamSideDTO{
		TeamID:   record.TeamID,
		Name:     name,
		CrestURL: crest,
		AsOf:     formatDate(record.Date),
		Form:     rollingFormToDTO(record.Form),
	}
}

// probabilitiesToDTO relies on the fixed class order away, draw, home.
func probabilitiesToDTO(proba []float64) probabilitiesDTO {
	var out probabilitiesDTO
	for i, class := range outcome.Classes {
		if i >= len(proba) {
			break
		}
		switch class {
		case -1:
			out.AwayWin = proba[i]
		case 0:
			out.Draw = proba[i]
		case 1:
			out.HomeWin = proba[i]
		}
	}
	return out
}

func modelInfoToDTO(m *outcome.Model) modelInfoDTO {
	return modelInfoDTO{
		ID:              m.ID,
		TrainedAt:       m.TrainedAt.Format(time.RFC3339),
		TrainRows:       m.TrainRows,
		HoldoutRows:     m.HoldoutRows,
		HoldoutAccuracy: m.HoldoutAccuracy,
	}
}

func teamFormToDTO(teamID int64, name string, history []match.TeamRecord) teamFormDTO {
	out := teamFormDTO{TeamID: teamID, Name: name, Matches: make([]teamMatchDTO, 0, len(history))}
	for _, r := range history {
		out.Matches = append(out.Matches, teamMatchDTO{
			Date:         formatDate(r.Date),
			OpponentID:   r.OpponentID,
			IsHome:       r.IsHome,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			GoalDiff:     r.GoalDiff,
			Result:       string(r.Result),
			Form:         rollingFormToDTO(r.Form),
		})
	}
	return out
}
