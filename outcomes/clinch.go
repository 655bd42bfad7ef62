/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// resolveOwn fixes player's first undecided pairing to r and returns the
// resulting scores along with the pairings still left open.
func (f *Field) resolveOwn(player string, r Result) (ScoreMap, []Pairing,
	error) {

	p, rest, ok := f.Free.find(player)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoFreePairing, player)
	}
	if err := checkScores(f.Scores, f.Free.Sorted()); err != nil {
		return nil, nil, err
	}
	// results are from the left side's point of view
	if p.Right == player {
		switch r {
		case ResultLeftSweep:
			r = ResultRightSweep
		case ResultRightSweep:
			r = ResultLeftSweep
		}
	}

	return r.apply(f.Scores, p), rest, nil
}

// enumerateOwn enumerates every result of the other open pairings once
// player's own pairing has been fixed to r (a self sweep when r is
// ResultLeftSweep). Downstream pairings always consider all three results.
func (f *Field) enumerateOwn(player string, r Result,
	opts Options) (*Tally, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	scores, rest, err := f.resolveOwn(player, r)
	if err != nil {
		return nil, err
	}
	opts.TwoForOne = false

	t := newTally(opts.CutSize)
	enumerate(f.Opponents, scores, rest, opts, t)

	return t, nil
}

// SafeToClinch reports whether player is guaranteed a cut slot if their own
// undecided pairing ends in a split, no matter how every other pairing
// resolves. This is the question behind offering an intentional draw.
func SafeToClinch(f *Field, player string, opts Options) (bool, error) {
	t, err := f.enumerateOwn(player, ResultSplit, opts)
	if err != nil {
		return false, err
	}
	return t.Clinched(player), nil
}

// SafeToClinchAll returns, sorted by name, every player in an undecided
// pairing for whom SafeToClinch holds.
func SafeToClinchAll(ctx context.Context, f *Field,
	opts Options) ([]string, error) {

	players := f.Free.Players()
	safe := make([]bool, len(players))

	err := forEachPlayer(ctx, players, func(idx int, player string) error {
		ok, err := SafeToClinch(f, player, opts)
		if err != nil {
			return fmt.Errorf("unable to check %v: %w", player, err)
		}
		safe[idx] = ok
		return nil
	})
	if err != nil {
		return nil, err
	}

	var ret []string
	for idx, player := range players {
		if safe[idx] {
			ret = append(ret, player)
		}
	}

	return ret, nil
}

// forEachPlayer runs fn for each player on a bounded pool of goroutines. Each
// call owns its own enumeration so no state is shared between them.
func forEachPlayer(ctx context.Context, players []string,
	fn func(idx int, player string) error) error {

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for idx, player := range players {
		idx, player := idx, player
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(idx, player)
		})
	}

	return g.Wait()
}
