package event

// Type is the event category as written by the data provider.
type Type string

const (
	TypeGoals         Type = "Goals"
	TypeCards         Type = "Cards"
	TypeSubstitutions Type = "Substitutions"
	TypeShootout      Type = "Shootout"
)

// MaxMinute is the latest plausible event minute, extra time and stoppages
// included.
const MaxMinute = 200

// GameEvent is a single in-match event. Minute is validated at ingestion to
// lie in [0, MaxMinute].
type GameEvent struct {
	Type     Type
	PlayerID int64
	GameID   int64
	Minute   float64
}
