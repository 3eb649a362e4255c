package domain

import "time"

// Vote — голос избирателя за кандидата.
//
// Избиратель голосует не более одного раза: voter_id уникален в таблице votes.
type Vote struct {
	ID          int64     `json:"id"`
	VoterID     int64     `json:"voter_id"`
	CandidateID int64     `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`

	// VoterName, CandidateName — отображаемые имена из JOIN, только при чтении.
	VoterName     string `json:"voter_name,omitempty"`
	CandidateName string `json:"candidate_name,omitempty"`
}

// TallyRow — итог голосования по одному кандидату.
type TallyRow struct {
	CandidateID int64   `json:"candidate_id" csv:"candidate_id"`
	FirstName   string  `json:"first_name" csv:"first_name"`
	LastName    string  `json:"last_name" csv:"last_name"`
	PartyName   *string `json:"party_name" csv:"party_name"`
	Count       int64   `json:"count" csv:"count"`
}
