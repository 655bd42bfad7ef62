/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"fmt"
)

// Options parameterize an enumeration.
type Options struct {
	// Rounds is the total number of Swiss rounds in the event.
	Rounds int
	// CutSize is the number of players advancing to the top cut.
	CutSize int
	// TwoForOne disallows the split result, so every undecided pairing
	// resolves as a sweep for one side.
	TwoForOne bool
}

func (o Options) Validate() error {
	if o.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be positive (got %v)",
			ErrInvalidOptions, o.Rounds)
	}
	if o.CutSize <= 0 {
		return fmt.Errorf("%w: cut size must be positive (got %v)",
			ErrInvalidOptions, o.CutSize)
	}
	return nil
}

// BranchFactor is the number of results considered per undecided pairing.
func (o Options) BranchFactor() int {
	return len(o.results())
}

// Leaves returns the number of fully resolved outcomes for k undecided
// pairings.
func (o Options) Leaves(k int) int {
	ret := 1
	for i := 0; i < k; i++ {
		ret *= o.BranchFactor()
	}
	return ret
}

func (o Options) results() []Result {
	if o.TwoForOne {
		return []Result{ResultLeftSweep, ResultRightSweep}
	}
	return []Result{ResultLeftSweep, ResultSplit, ResultRightSweep}
}

// Result is the outcome of one undecided pairing.
type Result int

const (
	ResultLeftSweep Result = iota
	ResultSplit
	ResultRightSweep
)

func (r Result) String() string {
	switch r {
	case ResultLeftSweep:
		return "6 - 0"
	case ResultSplit:
		return "3 - 3"
	case ResultRightSweep:
		return "0 - 6"
	default:
		return "? - ?"
	}
}

// apply returns a copy of scores with the result of p added.
func (r Result) apply(scores ScoreMap, p Pairing) ScoreMap {
	ret := scores.Clone()
	switch r {
	case ResultLeftSweep:
		ret[p.Left] += SweepPoints
	case ResultSplit:
		ret[p.Left] += SplitPoints
		ret[p.Right] += SplitPoints
	case ResultRightSweep:
		ret[p.Right] += SweepPoints
	}
	return ret
}

// Describe renders p resolved as r, e.g. "Alice 6 - 0 Bob".
func (r Result) Describe(p Pairing) string {
	return fmt.Sprintf("%-20s %v %20s", p.Left, r, p.Right)
}

// Tally counts, per player, the leaves in which that player held a cut slot.
type Tally struct {
	Counts  map[string]int
	Leaves  int
	CutSize int
}

func newTally(cutSize int) *Tally {
	return &Tally{
		Counts:  make(map[string]int),
		CutSize: cutSize,
	}
}

// Slots returns the total number of cut slots filled across all leaves.
func (t *Tally) Slots() int {
	total := 0
	for _, c := range t.Counts {
		total += c
	}
	return total
}

// Enumerate resolves every undecided pairing in free every possible way and
// tallies who makes the cut in each resulting field. Neither scores nor free
// is modified.
func Enumerate(opps OpponentMap, scores ScoreMap, free FreeMap,
	opts Options) (*Tally, error) {

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pending := free.Sorted()
	if err := checkScores(scores, pending); err != nil {
		return nil, err
	}

	t := newTally(opts.CutSize)
	enumerate(opps, scores, pending, opts, t)

	return t, nil
}

// Enumerate runs Enumerate over the whole field.
func (f *Field) Enumerate(opts Options) (*Tally, error) {
	return Enumerate(f.Opponents, f.Scores, f.Free, opts)
}

func enumerate(opps OpponentMap, scores ScoreMap, pending []Pairing,
	opts Options, t *Tally) {

	if len(pending) == 0 {
		standings := Rank(scores, opps, opts.Rounds)
		for idx := 0; idx < opts.CutSize && idx < len(standings); idx++ {
			t.Counts[standings[idx].Name]++
		}
		t.Leaves++
		return
	}

	// pending[1:] is shared by every branch but never written to
	p, rest := pending[0], pending[1:]
	for _, r := range opts.results() {
		enumerate(opps, r.apply(scores, p), rest, opts, t)
	}
}

func checkScores(scores ScoreMap, pending []Pairing) error {
	for _, p := range pending {
		for _, name := range []string{p.Left, p.Right} {
			if _, ok := scores[name]; !ok {
				return fmt.Errorf("%w: %v", ErrUnknownPlayer, name)
			}
		}
	}
	return nil
}
