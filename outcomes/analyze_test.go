/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var fourPlayerOpts = Options{Rounds: 1, CutSize: 2}

func TestPercentages(t *testing.T) {
	f := fourPlayerField(t)
	tally, err := f.Enumerate(fourPlayerOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := tally.Percentages()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Odd{
		{Name: "A", Count: 3, Percent: 100},
		{Name: "C", Count: 2, Percent: 200.0 / 3},
		{Name: "D", Count: 1, Percent: 100.0 / 3},
	}
	if diff := cmp.Diff(want, got,
		cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("odds mismatch (-want +got):\n%s", diff)
	}

	// count/slots*100*cut must agree with the leaf based figure
	for _, o := range got {
		viaSlots := float64(o.Count) / float64(tally.Slots()) * 100 *
			float64(tally.CutSize)
		if math.Abs(viaSlots-o.Percent) > 1e-9 {
			t.Errorf("%v: slot based %v != leaf based %v", o.Name, viaSlots,
				o.Percent)
		}
	}
}

func TestPercentagesNoLeaves(t *testing.T) {
	tally := newTally(2)
	if _, err := tally.Percentages(); !errors.Is(err, ErrNoOutcomes) {
		t.Errorf("expected ErrNoOutcomes, got %v", err)
	}
	if _, err := tally.Percent("A"); !errors.Is(err, ErrNoOutcomes) {
		t.Errorf("expected ErrNoOutcomes, got %v", err)
	}
}

func TestSafeToClinch(t *testing.T) {
	f := fourPlayerField(t)

	cases := []struct {
		player string
		want   bool
	}{
		{"C", true},
		{"D", false},
	}
	for _, c := range cases {
		t.Run(c.player, func(t *testing.T) {
			got, err := SafeToClinch(f, c.player, fourPlayerOpts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("SafeToClinch(%v) = %v; want %v", c.player, got, c.want)
			}

			// must agree with a full tally under the forced split
			tally, err := f.enumerateOwn(c.player, ResultSplit, fourPlayerOpts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != (tally.Counts[c.player] == tally.Leaves) {
				t.Errorf("SafeToClinch(%v) disagrees with tally %+v", c.player,
					tally)
			}
		})
	}

	if _, err := SafeToClinch(f, "A", fourPlayerOpts); !errors.Is(err,
		ErrNoFreePairing) {
		t.Errorf("expected ErrNoFreePairing, got %v", err)
	}
}

func TestSafeToClinchAll(t *testing.T) {
	f := fourPlayerField(t)
	got, err := SafeToClinchAll(context.Background(), f, fourPlayerOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"C"}, got); diff != "" {
		t.Errorf("safe mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SafeToClinchAll(ctx, f, fourPlayerOpts); !errors.Is(err,
		context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweepSplitFold(t *testing.T) {
	f := fourPlayerField(t)
	got, err := SweepSplitFoldAll(context.Background(), f, fourPlayerOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []SSF{
		{Name: "C", Sweep: 100, Split: 100, Fold: 0},
		{Name: "D", Sweep: 100, Split: 0, Fold: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ssf mismatch (-want +got):\n%s", diff)
	}

	out := BuildContentionOutput(got)
	if !strings.HasPrefix(out, "PLAYERS UP FOR CONTENTION\n") {
		t.Errorf("unexpected contention output %q", out)
	}
	if !strings.Contains(out, want[1].String()) {
		t.Errorf("expected %q in %q", want[1].String(), out)
	}
	if BuildContentionOutput([]SSF{{Name: "X"}}) != "" {
		t.Errorf("expected no output when nobody can make the cut")
	}
}

func TestInspectPlayer(t *testing.T) {
	f := fourPlayerField(t)
	p := Pairing{Left: "C", Right: "D"}

	insp, err := InspectPlayer(f, "C", fourPlayerOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Scenario{
		{ResultLeftSweep.Describe(p)},
		{ResultSplit.Describe(p)},
	}
	if diff := cmp.Diff(want, insp.Scenarios); diff != "" {
		t.Errorf("scenarios mismatch (-want +got):\n%s", diff)
	}
	if insp.All || insp.Total != 3 {
		t.Errorf("unexpected inspection summary %+v", insp)
	}

	out := BuildInspectionOutput(insp, 1)
	wantOut := "There are 2 scenarios where C makes it to the top cut\n\n" +
		"Scenario 1:\n    " + ResultLeftSweep.Describe(p) + "\n\n" +
		"... and 1 other scenarios\n"
	if out != wantOut {
		t.Errorf("output mismatch:\n got %q\nwant %q", out, wantOut)
	}
}

func TestInspectPlayerAlwaysQualifies(t *testing.T) {
	f := sixPlayerField(t)

	for _, twoForOne := range []bool{false, true} {
		opts := Options{Rounds: 2, CutSize: 6, TwoForOne: twoForOne}
		insp, err := InspectPlayer(f, "P1", opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !insp.All || len(insp.Scenarios) != opts.Leaves(len(f.Free)) {
			t.Errorf("241:%v: expected all %d scenarios, got %d", twoForOne,
				opts.Leaves(len(f.Free)), len(insp.Scenarios))
		}
		want := "P1 makes it to the top cut in all"
		if out := BuildInspectionOutput(insp, 5); !strings.HasPrefix(out,
			want) {
			t.Errorf("expected %q prefix, got %q", want, out)
		}
	}

	if _, err := InspectPlayer(f, "Nobody", Options{Rounds: 2,
		CutSize: 2}); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestScenarioBranchesIndependent(t *testing.T) {
	// with two open pairings every scenario must have exactly two lines
	f := sixPlayerField(t)
	insp, err := InspectPlayer(f, "P1", Options{Rounds: 2, CutSize: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[string]bool)
	for _, s := range insp.Scenarios {
		if len(s) != 2 {
			t.Fatalf("scenario has %d lines: %v", len(s), s)
		}
		key := strings.Join(s, "|")
		if seen[key] {
			t.Fatalf("duplicate scenario %v", s)
		}
		seen[key] = true
	}
}
