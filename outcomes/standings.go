/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"fmt"
	"sort"
)

// Points awarded per round. A round is 2 games; a sweep is worth 6 and a
// split gives each side 3.
const (
	SweepPoints   = 6
	SplitPoints   = 3
	PointsPerGame = 3
)

// Standing is one player's position in a fully resolved field.
type Standing struct {
	Name  string
	Score int
	SoS   float64
	ESoS  float64
}

func (s Standing) String() string {
	return fmt.Sprintf("%-20s %3d %06.3f %3.3f", s.Name, s.Score, s.SoS, s.ESoS)
}

// Rank computes SoS and ESoS for every player in scores and returns them
// ordered by score, SoS and ESoS (all descending) and finally by name.
// The bye placeholder is not a player and never appears in the result.
func Rank(scores ScoreMap, opps OpponentMap, rounds int) []Standing {
	standings := make([]Standing, 0, len(scores))
	for name, score := range scores {
		if name == ByeName {
			continue
		}
		standings = append(standings, Standing{Name: name, Score: score})
	}

	sos := make(map[string]float64, len(standings))
	for idx := range standings {
		s := &standings[idx]
		s.SoS = strengthOfSchedule(s.Name, scores, opps, rounds)
		sos[s.Name] = s.SoS
	}
	for idx := range standings {
		s := &standings[idx]
		s.ESoS = extendedStrengthOfSchedule(s.Name, sos, opps, rounds)
	}

	sort.Slice(standings, func(i, j int) bool {
		return standings[i].less(standings[j])
	})

	return standings
}

func (s Standing) less(o Standing) bool {
	if s.Score != o.Score {
		return s.Score > o.Score
	}
	if s.SoS != o.SoS {
		return s.SoS > o.SoS
	}
	if s.ESoS != o.ESoS {
		return s.ESoS > o.ESoS
	}
	return s.Name < o.Name
}

// effectiveRounds discounts a bye round, which has no opponent to measure.
func effectiveRounds(player string, opps OpponentMap, rounds int) int {
	if opps.Has(player, ByeName) {
		rounds--
	}
	return rounds
}

// strengthOfSchedule is the average score of player's opponents, as a fraction
// of the points available per game. Points recorded against the bye count
// toward the sum; only the divisor discounts the bye round.
func strengthOfSchedule(player string, scores ScoreMap, opps OpponentMap,
	rounds int) float64 {

	rounds = effectiveRounds(player, opps, rounds)
	if rounds <= 0 {
		return 0
	}

	total := 0
	for o := range opps[player] {
		total += scores[o]
	}

	return float64(total) / float64(rounds*PointsPerGame)
}

// extendedStrengthOfSchedule is the average SoS of player's opponents.
func extendedStrengthOfSchedule(player string, sos map[string]float64,
	opps OpponentMap, rounds int) float64 {

	rounds = effectiveRounds(player, opps, rounds)
	if rounds <= 0 {
		return 0
	}

	total := 0.0
	for _, o := range opps.Sorted(player) {
		if o == ByeName {
			continue
		}
		total += sos[o]
	}

	return total / float64(rounds)
}

// position returns the 1 based rank of player, or 0 if absent.
func position(standings []Standing, player string) int {
	for idx, s := range standings {
		if s.Name == player {
			return idx + 1
		}
	}
	return 0
}
