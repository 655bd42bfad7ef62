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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/swisscut/cobrai"
	"github.com/mikeb26/swisscut/outcomes"
)

// this program exists just to seed the http cache for running cobr.ai events

// at most this many fetches are in flight at once, to avoid pegging cobr.ai
const maxInFlight = 2

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %v <tournament-id>...\n", os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	client := cobrai.NewClient(ctx)

	var g errgroup.Group
	g.SetLimit(maxInFlight)
	for _, arg := range os.Args[1:] {
		tid := cobrai.TournamentID(arg)
		g.Go(func() error {
			tourney, err := client.FetchTournament(ctx, tid)
			time.Sleep(2 * time.Second)
			if err != nil {
				// best effort
				log.Printf("cacheseed: skipping tid:%v: %v", tid, err)
				return nil
			}

			fmt.Printf("seeded tid:%v (%v, %d pairings)\n", tid, tourney.Name,
				len(tourney.Lines)/outcomes.LinesPerRecord)
			return nil
		})
	}
	_ = g.Wait()
}
