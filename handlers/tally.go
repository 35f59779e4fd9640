// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/models"
)

// computeResults recomputes the full result set from the ballot log and the
// candidate roster. Pure pull model: nothing is cached between calls, so
// there are no incremental counters to drift.
//
// Ballots join candidates by name. A renamed candidate or two candidates
// sharing a name will misattribute votes; the roster is externally managed
// and this mirrors its semantics.
func computeResults(db *sql.DB) (*models.ResultsResponse, error) {
	candidates, err := loadCandidates(db)
	if err != nil {
		return nil, err
	}

	counts, err := loadBallotCounts(db)
	if err != nil {
		return nil, err
	}

	// Group candidates by position, preserving roster insertion order for
	// both the position list and the per-position candidate list.
	positionOrder := []string{}
	byPosition := map[string][]models.CandidateEntry{}
	for _, c := range candidates {
		if _, seen := byPosition[c.Position]; !seen {
			positionOrder = append(positionOrder, c.Position)
		}
		byPosition[c.Position] = append(byPosition[c.Position], c)
	}

	positions := []models.PositionTally{}
	for _, pos := range positionOrder {
		tally := models.PositionTally{Position: pos}

		// Seed every registered candidate with zero votes so unvoted
		// candidates still appear.
		for _, c := range byPosition[pos] {
			votes := counts[pos][c.Name]
			tally.Candidates = append(tally.Candidates, models.CandidateTally{
				Name:  c.Name,
				Votes: votes,
			})
			tally.TotalVotes += votes
		}

		for i := range tally.Candidates {
			if tally.TotalVotes > 0 {
				share := float64(tally.Candidates[i].Votes) / float64(tally.TotalVotes) * 100
				tally.Candidates[i].Percentage = round1(share)
			}
		}

		// Votes descending; the stable sort keeps roster insertion order
		// as the tie-break.
		sort.SliceStable(tally.Candidates, func(i, j int) bool {
			return tally.Candidates[i].Votes > tally.Candidates[j].Votes
		})

		positions = append(positions, tally)
	}

	totalVoters, voted, totalVotes, err := loadTurnout(db)
	if err != nil {
		return nil, err
	}

	resp := &models.ResultsResponse{
		Positions:   positions,
		TotalVoters: totalVoters,
		TotalVotes:  totalVotes,
	}
	if totalVoters > 0 {
		resp.TurnoutPercent = round1(float64(voted) / float64(totalVoters) * 100)
	}

	return resp, nil
}

func loadCandidates(db *sql.DB) ([]models.CandidateEntry, error) {
	rows, err := db.Query(`
		SELECT name, position, COALESCE(department, ''), seq
		FROM candidate
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.CandidateEntry{}
	for rows.Next() {
		var c models.CandidateEntry
		if err := rows.Scan(&c.Name, &c.Position, &c.Department, &c.Seq); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// loadBallotCounts groups the ballot log by (position, candidate name).
func loadBallotCounts(db *sql.DB) (map[string]map[string]int, error) {
	rows, err := db.Query(`
		SELECT position, candidate_name, COUNT(*)
		FROM ballot
		GROUP BY position, candidate_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to group ballots: %w", err)
	}
	defer rows.Close()

	counts := map[string]map[string]int{}
	for rows.Next() {
		var position, name string
		var n int
		if err := rows.Scan(&position, &name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan ballot group: %w", err)
		}
		if counts[position] == nil {
			counts[position] = map[string]int{}
		}
		counts[position][name] = n
	}
	return counts, rows.Err()
}

func loadTurnout(db *sql.DB) (totalVoters, voted, totalVotes int, err error) {
	if err = db.QueryRow(`SELECT COUNT(*) FROM voter WHERE active`).Scan(&totalVoters); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count active voters: %w", err)
	}
	if err = db.QueryRow(`SELECT COUNT(DISTINCT voter_id) FROM ballot`).Scan(&voted); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count distinct voters: %w", err)
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&totalVotes); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return totalVoters, voted, totalVotes, nil
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
