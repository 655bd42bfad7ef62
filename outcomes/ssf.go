/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SSF holds a player's cut odds for each result of their own pairing.
type SSF struct {
	Name  string
	Sweep float64
	Split float64
	Fold  float64
}

func (s SSF) String() string {
	return fmt.Sprintf("%-20s %7.3f%% %7.3f%% %7.3f%%", s.Name, s.Sweep,
		s.Split, s.Fold)
}

// SweepSplitFold computes player's cut odds when they sweep, split and lose
// their own undecided pairing, with every other pairing left open.
func SweepSplitFold(f *Field, player string, opts Options) (SSF, error) {
	ret := SSF{Name: player}
	dests := []*float64{&ret.Sweep, &ret.Split, &ret.Fold}

	for idx, r := range []Result{ResultLeftSweep, ResultSplit,
		ResultRightSweep} {

		t, err := f.enumerateOwn(player, r, opts)
		if err != nil {
			return SSF{}, err
		}
		pct, err := t.Percent(player)
		if err != nil {
			return SSF{}, err
		}
		*dests[idx] = pct
	}

	return ret, nil
}

// SweepSplitFoldAll computes SweepSplitFold for every player in an undecided
// pairing, sorted by name.
func SweepSplitFoldAll(ctx context.Context, f *Field,
	opts Options) ([]SSF, error) {

	players := f.Free.Players()
	ret := make([]SSF, len(players))

	err := forEachPlayer(ctx, players, func(idx int, player string) error {
		ssf, err := SweepSplitFold(f, player, opts)
		if err != nil {
			return fmt.Errorf("unable to compute sweep/split/fold for %v: %w",
				player, err)
		}
		ret[idx] = ssf
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// BuildContentionOutput formats the players who can still make the cut by
// sweeping, with their odds for each result of their own pairing.
func BuildContentionOutput(ssfs []SSF) string {
	var contenders []SSF
	for _, s := range ssfs {
		if s.Sweep > 0 {
			contenders = append(contenders, s)
		}
	}
	if len(contenders) == 0 {
		return ""
	}
	sort.Slice(contenders, func(i, j int) bool {
		return contenders[i].Name < contenders[j].Name
	})

	var sb strings.Builder
	sb.WriteString("PLAYERS UP FOR CONTENTION\n")
	sb.WriteString("                         SWEEP   SPLIT     FOLD\n")
	for _, s := range contenders {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
