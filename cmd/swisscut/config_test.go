/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unable to write %v: %v", path, err)
	}
	return path
}

func TestLoadEventConfig(t *testing.T) {
	path := writeFile(t, "event.yaml", `name: Circuit Opener
date: March 14 2026
pairings: s3://bucket/gnk.txt
rounds: 4
cut: 8
twoForOne: true
`)
	got, err := loadEventConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := EventConfig{
		Name:        "Circuit Opener",
		Date:        "March 14 2026",
		Pairings:    "s3://bucket/gnk.txt",
		Rounds:      4,
		CutSize:     8,
		TwoForOne:   true,
		ScenarioMax: 5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := loadEventConfig(filepath.Join(t.TempDir(),
		"nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing config")
	}
	bad := writeFile(t, "bad.yaml", "rounds: [\n")
	if _, err := loadEventConfig(bad); err == nil {
		t.Errorf("expected an error for malformed yaml")
	}
}

func TestEventConfigValidate(t *testing.T) {
	valid := EventConfig{Pairings: "p.txt", Rounds: 4, CutSize: 4,
		ScenarioMax: 5}

	cases := []struct {
		name    string
		needCut bool
		mutate  func(c *EventConfig)
		wantErr string
	}{
		{"valid", true, func(c *EventConfig) {}, ""},
		{"noSource", true, func(c *EventConfig) { c.Pairings = "" },
			"exactly one"},
		{"twoSources", true, func(c *EventConfig) { c.Tournament = "4242" },
			"exactly one"},
		{"zeroRounds", true, func(c *EventConfig) { c.Rounds = 0 },
			"--round-count"},
		{"bigRounds", true, func(c *EventConfig) { c.Rounds = 11 },
			"--round-count"},
		{"zeroCut", true, func(c *EventConfig) { c.CutSize = 0 },
			"--cut-size"},
		{"zeroCutNotNeeded", false, func(c *EventConfig) { c.CutSize = 0 },
			""},
		{"bigScenarioMax", true, func(c *EventConfig) { c.ScenarioMax = 1001 },
			"--scenario-max"},
		{"badDate", true, func(c *EventConfig) { c.Date = "not a date" },
			"invalid date"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid
			c.mutate(&cfg)
			err := cfg.validate(c.needCut)
			if c.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("err = %v; want %q", err, c.wantErr)
			}
		})
	}
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	ro := &rootOptions{configPath: writeFile(t, "event.yaml",
		"pairings: p.txt\nrounds: 3\ncut: 4\nscenarioMax: 9\n")}

	cmd := &cobra.Command{Use: "test"}
	ef := bindEventFlags(cmd, ro, true)
	if err := cmd.Flags().Set("cut-size", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ef.resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := EventConfig{Pairings: "p.txt", Rounds: 3, CutSize: 2,
		ScenarioMax: 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestHeader(t *testing.T) {
	cases := []struct {
		cfg  EventConfig
		want string
	}{
		{EventConfig{}, ""},
		{EventConfig{Name: "Opener"}, "Opener\n\n"},
		{EventConfig{Name: "Opener", Date: "2026-03-14"},
			"Opener - 2026-03-14\n\n"},
		{EventConfig{Date: "March 14, 2026"}, "2026-03-14\n\n"},
	}
	for _, c := range cases {
		if got := c.cfg.header(); got != c.want {
			t.Errorf("header(%+v) = %q; want %q", c.cfg, got, c.want)
		}
	}
}

const fourPlayerPairings = "A\n6\nB\n0\nC\n\nD\n\n"

// runRoot executes args against a freshly built command tree, so no flag
// state carries over between calls.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRunRoot(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runRoot(t, args...)
	if err != nil {
		t.Fatalf("swisscut %v: %v", args, err)
	}
	return out
}

func TestOddsCommand(t *testing.T) {
	path := writeFile(t, "pairings.txt", fourPlayerPairings)

	out := mustRunRoot(t, "odds", "-p", path, "-r", "1", "-c", "2",
		"--inspect-player", "D", "--show-opponents", "A")
	for _, want := range []string{
		"ODDS FOR TOP 2 CUT (all outcomes):\n",
		"ODDS FOR TOP 2 CUT (241's enforced):\n",
		"PLAYERS SAFE TO ID\n  C\n",
		"There are 1 scenarios where D makes it to the top cut",
		"Opponents for A\n  vs. B (0 points)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStandingsCommand(t *testing.T) {
	path := writeFile(t, "pairings.txt", fourPlayerPairings)

	out := mustRunRoot(t, "standings", "-p", path, "-r", "1")
	if !strings.HasPrefix(out, "1 pairings are still undecided\n\n 1: A") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runRoot(t, "standings", "-p", path, "-r", "1", "-c",
		"2"); err == nil {
		t.Errorf("expected standings to reject --cut-size")
	}
}

func TestOddsRequiresCutSize(t *testing.T) {
	path := writeFile(t, "pairings.txt", fourPlayerPairings)

	_, err := runRoot(t, "odds", "-p", path, "-r", "1")
	if err == nil || !strings.Contains(err.Error(), "--cut-size") {
		t.Errorf("err = %v; want a --cut-size error", err)
	}
}

func TestCommandTreeIsFreshPerRun(t *testing.T) {
	path := writeFile(t, "pairings.txt", fourPlayerPairings)

	first := mustRunRoot(t, "odds", "-p", path, "-r", "1", "-c", "2",
		"--inspect-player", "D")
	if !strings.Contains(first, "scenarios where D") {
		t.Fatalf("expected an inspection of D in:\n%s", first)
	}

	second := mustRunRoot(t, "odds", "-p", path, "-r", "1", "-c", "2")
	if strings.Contains(second, "scenarios where D") {
		t.Errorf("--inspect-player leaked into a later run:\n%s", second)
	}
}
