/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mikeb26/swisscut/cobrai"
	"github.com/mikeb26/swisscut/internal"
)

func newFetchCmd() *cobra.Command {
	var output string

	fetchCmd := &cobra.Command{
		Use:   "fetch <tournament-id>",
		Short: "Scrape swiss pairings from cobr.ai",
		Long: `Fetch the rounds page of a cobr.ai tournament and write its swiss
pairings in the 4 line format read by --pairings. Unreported results are
written as empty lines so they can be filled in by hand.

Examples:
  swisscut fetch 4242 > pairings.txt
  swisscut fetch 4242 -o s3://my-bucket/events/4242.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], output)
		},
	}
	fetchCmd.Flags().StringVarP(&output, "output", "o", internal.StdioName,
		`Destination (path, "-" for stdout, or s3://bucket/key)`)

	return fetchCmd
}

func runFetch(cmd *cobra.Command, tid string, output string) error {
	ctx := cmd.Context()

	tourney, err := cobrai.NewClient(ctx).FetchTournament(ctx,
		cobrai.TournamentID(tid))
	if err != nil {
		return err
	}
	if _, err := tourney.Records(); err != nil {
		log.Printf("swisscut.fetch: warning: scraped pairings do not parse: %v",
			err)
	}

	return internal.WritePairingLines(ctx, output, tourney.Lines)
}
