/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	debugLevel int
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "swisscut",
		Short: "Top cut odds for a Swiss tournament in progress",
		Long: `swisscut reads the pairings of a Swiss tournament, resolves every
undecided pairing every possible way, and reports how likely each player is
to make the top cut.

Pairings are 4 lines each: left player, left result, right player, right
result. An empty result marks a pairing that hasn't finished yet. They can be
read from a local file, stdin ("-"), s3://bucket/key, or scraped from cobr.ai.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&ro.configPath, "config", "",
		"YAML event file supplying defaults for any flag")
	rootCmd.PersistentFlags().IntVar(&ro.debugLevel, "debug", 0,
		"Debug output level (0-2)")

	rootCmd.AddCommand(newOddsCmd(ro))
	rootCmd.AddCommand(newStandingsCmd(ro))
	rootCmd.AddCommand(newFetchCmd())

	return rootCmd
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}
