package model

import "time"

// UserID uniquely identifies a user
type UserID string

// Faction is a team affiliation assigned at account creation.
// It determines which branch of the mini-game sequence a user is routed
// through after the shared checkpoint and never changes afterwards.
type Faction string

const (
	FactionHeirs         Faction = "heirs"
	FactionResearchers   Faction = "researchers"
	FactionTreasurers    Faction = "treasurers"
	FactionInvestigators Faction = "investigators"
)

// Factions lists every valid faction in a stable order
var Factions = []Faction{
	FactionHeirs,
	FactionResearchers,
	FactionTreasurers,
	FactionInvestigators,
}

// Valid reports whether f is one of the fixed faction enumeration
func (f Faction) Valid() bool {
	for _, known := range Factions {
		if f == known {
			return true
		}
	}
	return false
}

// User is an identity plus progress record. Users are provisioned in bulk
// before the event and are never deleted; score and stage are mutated only
// through the progress ledger.
type User struct {
	ID             UserID
	Username       string
	PasswordHash   string
	Score          int
	Faction        Faction
	Stage          int
	ScoreUpdatedAt time.Time
	CreatedAt      time.Time
}

// Progress is the ledger's view of a user
type Progress struct {
	Score   int
	Faction Faction
	Stage   int
}
