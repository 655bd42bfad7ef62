/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeb26/swisscut/outcomes"
)

type oddsOptions struct {
	event         *eventFlags
	inspectPlayer string
	showOpponents string
}

func newOddsCmd(ro *rootOptions) *cobra.Command {
	oo := &oddsOptions{}

	oddsCmd := &cobra.Command{
		Use:   "odds",
		Short: "Report top cut odds for every player",
		Long: `Enumerate every outcome of the undecided pairings and report each
player's odds of making the top cut, both with all results possible and with
241s (no splits) enforced. Also lists the players who clinch with a split and
each contender's odds if they sweep, split or fold.

With no undecided pairings the final standings and seeds are printed instead.

Examples:
  swisscut odds -p pairings.txt -r 4 -c 4
  swisscut odds -t 4242 -r 5 -c 8 --inspect-player Alice --scenario-max 10
  swisscut odds --config event.yaml --show-opponents Bob`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.run(cmd)
		},
	}

	oo.event = bindEventFlags(oddsCmd, ro, true)
	fs := oddsCmd.Flags()
	fs.BoolVar(&oo.event.TwoForOne, "two-for-one", false,
		"Only consider sweeps when inspecting a player")
	fs.IntVar(&oo.event.ScenarioMax, "scenario-max",
		outcomes.DefaultScenarioMax,
		"Maximum number of scenarios to display for --inspect-player")
	fs.StringVar(&oo.inspectPlayer, "inspect-player", "",
		"List the exact scenarios in which this player makes the cut")
	fs.StringVar(&oo.showOpponents, "show-opponents", "",
		"Show the opponents of this player")

	return oddsCmd
}

func (oo *oddsOptions) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	start := time.Now()

	cfg, err := oo.event.resolve()
	if err != nil {
		return err
	}
	f, err := oo.event.loadField(ctx, &cfg)
	if err != nil {
		return err
	}

	report, err := outcomes.BuildReport(ctx, f, outcomes.ReportOptions{
		Options:       cfg.options(),
		InspectPlayer: oo.inspectPlayer,
		ScenarioMax:   cfg.ScenarioMax,
		ShowOpponents: oo.showOpponents,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), cfg.header()+report)
	oo.event.root.debugf(1,
		"swisscut.odds: finished processing %d open pairings in %v",
		len(f.Free), time.Since(start))

	return nil
}
