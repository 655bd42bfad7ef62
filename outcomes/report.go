/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"context"
	"fmt"
	"strings"
)

// ReportOptions select what goes into a full report.
type ReportOptions struct {
	Options

	// InspectPlayer, if set, lists the scenarios in which that player makes
	// the cut.
	InspectPlayer string
	// ScenarioMax caps the number of scenarios listed for InspectPlayer.
	ScenarioMax int
	// ShowOpponents, if set, lists that player's opponents and their scores.
	ShowOpponents string
}

// BuildReport runs every analysis appropriate for f and formats the results.
// With nothing left undecided this is the final standings and seeds;
// otherwise it is the cut odds with and without splits, the players safe to
// take a split, and each contender's sweep/split/fold odds.
func BuildReport(ctx context.Context, f *Field,
	ropts ReportOptions) (string, error) {

	opts := ropts.Options
	if err := opts.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	if len(f.Free) == 0 {
		standings := Rank(f.Scores, f.Opponents, opts.Rounds)
		sb.WriteString(BuildFixedOutput(standings, opts.CutSize))
	} else {
		for _, twoForOne := range []bool{false, true} {
			o := opts
			o.TwoForOne = twoForOne
			t, err := f.Enumerate(o)
			if err != nil {
				return "", err
			}
			odds, err := t.Percentages()
			if err != nil {
				return "", err
			}
			sb.WriteString(BuildOddsOutput(odds, o))
			sb.WriteString("\n")
		}

		safe, err := SafeToClinchAll(ctx, f, opts)
		if err != nil {
			return "", err
		}
		sb.WriteString(BuildSafeOutput(safe))

		ssfs, err := SweepSplitFoldAll(ctx, f, opts)
		if err != nil {
			return "", err
		}
		if out := BuildContentionOutput(ssfs); out != "" {
			sb.WriteString("\n")
			sb.WriteString(out)
		}

		if ropts.InspectPlayer != "" {
			insp, err := InspectPlayer(f, ropts.InspectPlayer, opts)
			if err != nil {
				return "", err
			}
			sb.WriteString("\n")
			sb.WriteString(BuildInspectionOutput(insp, ropts.ScenarioMax))
		}
	}

	if ropts.ShowOpponents != "" {
		sb.WriteString("\n")
		sb.WriteString(BuildOpponentsOutput(f, ropts.ShowOpponents))
	}

	return sb.String(), nil
}

// BuildFixedOutput formats fully resolved standings followed by the seeds
// that make the cut.
func BuildFixedOutput(standings []Standing, cutSize int) string {
	var sb strings.Builder
	sb.WriteString(" FIXED RESULT\n")
	sb.WriteString("==============\n")
	for idx, s := range standings {
		sb.WriteString(fmt.Sprintf("%2d: %v\n", idx+1, s))
	}
	sb.WriteString("\n")
	for idx, s := range standings {
		if idx >= cutSize {
			break
		}
		sb.WriteString(fmt.Sprintf("%2d%s seed: %s\n", idx+1,
			ordinalSuffix(idx+1), s.Name))
	}

	return sb.String()
}

// BuildOddsOutput formats odds as produced by Tally.Percentages.
func BuildOddsOutput(odds []Odd, opts Options) string {
	var sb strings.Builder
	if opts.TwoForOne {
		sb.WriteString(fmt.Sprintf("ODDS FOR TOP %d CUT (241's enforced):\n",
			opts.CutSize))
	} else {
		sb.WriteString(fmt.Sprintf("ODDS FOR TOP %d CUT (all outcomes):\n",
			opts.CutSize))
	}
	for _, o := range odds {
		sb.WriteString(o.String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildSafeOutput formats the players who clinch with a split.
func BuildSafeOutput(safe []string) string {
	if len(safe) == 0 {
		return "No players are safe to ID\n"
	}

	var sb strings.Builder
	sb.WriteString("PLAYERS SAFE TO ID\n")
	for _, name := range safe {
		sb.WriteString(fmt.Sprintf("  %s\n", name))
	}

	return sb.String()
}

// BuildOpponentsOutput lists player's opponents with their current scores.
func BuildOpponentsOutput(f *Field, player string) string {
	if _, ok := f.Opponents[player]; !ok {
		return fmt.Sprintf("No pairings found for %s\n", player)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Opponents for %s\n", player))
	for _, o := range f.Opponents.Sorted(player) {
		sb.WriteString(fmt.Sprintf("  vs. %s (%d points)\n", o, f.Scores[o]))
	}

	return sb.String()
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
