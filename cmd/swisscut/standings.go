/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeb26/swisscut/outcomes"
)

func newStandingsCmd(ro *rootOptions) *cobra.Command {
	var ef *eventFlags

	standingsCmd := &cobra.Command{
		Use:   "standings",
		Short: "Show current standings from reported results only",
		Long: `Rank players on the results reported so far, ignoring any pairing
that is still undecided. SoS and ESoS use the full round count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(cmd, ef)
		},
	}
	ef = bindEventFlags(standingsCmd, ro, false)

	return standingsCmd
}

func runStandings(cmd *cobra.Command, ef *eventFlags) error {
	ctx := cmd.Context()

	cfg, err := ef.resolve()
	if err != nil {
		return err
	}
	f, err := ef.loadField(ctx, &cfg)
	if err != nil {
		return err
	}

	standings := outcomes.Rank(f.Scores, f.Opponents, cfg.Rounds)

	var sb strings.Builder
	sb.WriteString(cfg.header())
	if len(f.Free) > 0 {
		sb.WriteString(fmt.Sprintf("%d pairings are still undecided\n\n",
			len(f.Free)))
	}
	for idx, s := range standings {
		sb.WriteString(fmt.Sprintf("%2d: %v\n", idx+1, s))
	}
	fmt.Fprint(cmd.OutOrStdout(), sb.String())

	return nil
}
