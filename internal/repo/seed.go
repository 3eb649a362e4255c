package repo

import (
	"context"
	"fmt"
)

type seedCandidate struct {
	firstName         string
	lastName          string
	party             int // индекс в seedParties, -1 — без партии
	industryConnected bool
}

var seedParties = []struct {
	name        string
	description string
}{
	{"JS Juggernauts", "The JS Juggernauts eat, breathe, and sleep JavaScript. They can build everything you could ever want in JS, including a new kitchen sink."},
	{"Heroes of HTML", "Want to see a mock-up turn into an actual webpage in a matter of minutes? Well, the Heroes of HTML can get it done in a matter of seconds."},
	{"Git Gurus", "Need to resolve a merge conflict? The Git Gurus have your back. Nobody knows Git like these folks do."},
}

var seedCandidates = []seedCandidate{
	{"Ronald", "Firbank", 0, true},
	{"Virginia", "Woolf", 0, true},
	{"Piers", "Gaveston", 0, false},
	{"Charles", "LeRoi", 1, true},
	{"Katherine", "Mansfield", 1, true},
	{"Dora", "Carrington", 2, false},
	{"Edward", "Bellamy", 2, false},
	{"Montague", "Summers", 2, true},
	{"Octavia", "Butler", 2, true},
	{"Unity", "Mitford", -1, true},
}

// Seed заполняет пустую БД демонстрационными партиями и кандидатами.
// Если партии уже есть, ничего не делает.
func Seed(ctx context.Context, db Querier) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM parties`).Scan(&count); err != nil {
		return fmt.Errorf("count parties: %w", err)
	}
	if count > 0 {
		return nil
	}

	partyIDs := make([]int64, len(seedParties))
	for i, p := range seedParties {
		err := db.QueryRow(ctx, `
			INSERT INTO parties (name, description)
			VALUES ($1, $2)
			RETURNING id
		`, p.name, p.description).Scan(&partyIDs[i])
		if err != nil {
			return fmt.Errorf("seed party %q: %w", p.name, err)
		}
	}

	for _, c := range seedCandidates {
		var partyID *int64
		if c.party >= 0 {
			partyID = &partyIDs[c.party]
		}
		_, err := db.Exec(ctx, `
			INSERT INTO candidates (first_name, last_name, party_id, industry_connected)
			VALUES ($1, $2, $3, $4)
		`, c.firstName, c.lastName, partyID, c.industryConnected)
		if err != nil {
			return fmt.Errorf("seed candidate %s %s: %w", c.firstName, c.lastName, err)
		}
	}
	return nil
}
