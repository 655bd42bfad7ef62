/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"fmt"
	"strings"
)

// DefaultScenarioMax is how many scenarios BuildInspectionOutput lists when
// the caller doesn't say.
const DefaultScenarioMax = 5

// Scenario is the literal result of each undecided pairing along one path,
// in resolution order.
type Scenario []string

// Inspection lists every combination of results in which a player makes the
// cut.
type Inspection struct {
	Player    string
	Scenarios []Scenario
	// Total is the number of leaves explored.
	Total int
	// All is set when the player makes the cut in every leaf.
	All bool
}

// InspectPlayer walks the same tree as Enumerate and records the path to
// every leaf in which player finishes within the cut. Pairings resolve in
// left name order and each pairing tries left sweep, split (unless
// opts.TwoForOne) and right sweep in that order, so the result is stable.
func InspectPlayer(f *Field, player string,
	opts Options) (*Inspection, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pending := f.Free.Sorted()
	if err := checkScores(f.Scores, pending); err != nil {
		return nil, err
	}
	if _, ok := f.Scores[player]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPlayer, player)
	}

	insp := &Inspection{
		Player: player,
		Total:  opts.Leaves(len(pending)),
	}
	inspect(f.Opponents, f.Scores, pending, nil, player, opts, insp)
	insp.All = len(insp.Scenarios) == insp.Total

	return insp, nil
}

func inspect(opps OpponentMap, scores ScoreMap, pending []Pairing,
	scenario Scenario, player string, opts Options, insp *Inspection) {

	if len(pending) == 0 {
		pos := position(Rank(scores, opps, opts.Rounds), player)
		if pos > 0 && pos <= opts.CutSize {
			insp.Scenarios = append(insp.Scenarios, scenario)
		}
		return
	}

	p, rest := pending[0], pending[1:]
	for _, r := range opts.results() {
		// each branch gets its own backing array
		next := make(Scenario, len(scenario), len(scenario)+1)
		copy(next, scenario)
		next = append(next, r.Describe(p))
		inspect(opps, r.apply(scores, p), rest, next, player, opts, insp)
	}
}

// BuildInspectionOutput formats insp, listing at most max scenarios.
func BuildInspectionOutput(insp *Inspection, max int) string {
	if max <= 0 {
		max = DefaultScenarioMax
	}

	var sb strings.Builder
	if insp.All {
		sb.WriteString(fmt.Sprintf("%s makes it to the top cut in all %d scenarios\n",
			insp.Player, len(insp.Scenarios)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("There are %d scenarios where %s makes it to the top cut\n\n",
		len(insp.Scenarios), insp.Player))
	for idx, scenario := range insp.Scenarios {
		if idx >= max {
			sb.WriteString(fmt.Sprintf("... and %d other scenarios\n",
				len(insp.Scenarios)-idx))
			break
		}
		sb.WriteString(fmt.Sprintf("Scenario %d:\n", idx+1))
		for _, line := range scenario {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
