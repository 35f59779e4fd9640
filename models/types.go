package models

import "time"

// Request types

type RegisterRequest struct {
	VoterID string `json:"voter_id"`
	Surname string `json:"surname"`
}

type CastVoteRequest struct {
	VoterID   string `json:"voter_id"`
	Code      string `json:"code"`
	Candidate string `json:"candidate"`
	Position  string `json:"position"`
}

type ViewVoteRequest struct {
	Code string `json:"code"`
}

// Response types

type VoterInfo struct {
	VoterID    string `json:"voter_id"`
	Surname    string `json:"surname"`
	Faculty    string `json:"faculty,omitempty"`
	Department string `json:"department,omitempty"`
}

type RegisterResponse struct {
	Code  string    `json:"code"`
	Voter VoterInfo `json:"voter"`
}

type CastVoteResponse struct{}

type BallotView struct {
	Candidate string    `json:"candidate"`
	Position  string    `json:"position"`
	CastAt    time.Time `json:"cast_at"`
}

type ViewVoteResponse struct {
	Ballots []BallotView `json:"ballots"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Ledger string `json:"ledger"`
}

// Domain types

type RosterEntry struct {
	VoterID    string `json:"voter_id"`
	Surname    string `json:"surname"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

type Credential struct {
	VoterID  string    `json:"voter_id"`
	CodeHash string    `json:"-"` // Never expose in JSON
	IssuedAt time.Time `json:"issued_at"`
	Consumed bool      `json:"consumed"`
}

type Ballot struct {
	ID            string    `json:"id"`
	VoterID       string    `json:"-"` // Never expose in JSON
	CandidateName string    `json:"candidate_name"`
	Position      string    `json:"position"`
	CastAt        time.Time `json:"cast_at"`
}

type CandidateEntry struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Seq        int    `json:"-"`
}

// Tally types (derived, never persisted)

type CandidateTally struct {
	Name       string  `json:"name"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PositionTally struct {
	Position   string           `json:"position"`
	Candidates []CandidateTally `json:"candidates"`
	TotalVotes int              `json:"total_votes"`
}

type ResultsResponse struct {
	Positions      []PositionTally `json:"positions"`
	TotalVoters    int             `json:"total_voters"`
	TotalVotes     int             `json:"total_votes"`
	TurnoutPercent float64         `json:"turnout_percent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
