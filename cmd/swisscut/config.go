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
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mikeb26/swisscut/cobrai"
	"github.com/mikeb26/swisscut/internal"
	"github.com/mikeb26/swisscut/outcomes"
)

const (
	maxRounds      = 10
	maxCutSize     = 10
	maxScenarioMax = 1000
)

// EventConfig describes one event. It can be loaded from a YAML file via
// --config; flags given explicitly take precedence over the file.
type EventConfig struct {
	Name        string `yaml:"name"`
	Date        string `yaml:"date"`
	Pairings    string `yaml:"pairings"`
	Tournament  string `yaml:"tournament"`
	Rounds      int    `yaml:"rounds"`
	CutSize     int    `yaml:"cut"`
	TwoForOne   bool   `yaml:"twoForOne"`
	ScenarioMax int    `yaml:"scenarioMax"`
}

func defaultEventConfig() EventConfig {
	return EventConfig{ScenarioMax: outcomes.DefaultScenarioMax}
}

func loadEventConfig(path string) (EventConfig, error) {
	cfg := defaultEventConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %v: %w", path, err)
	}

	return cfg, nil
}

// eventFlags holds the raw flag values for the event related flags. needCut
// is set for subcommands that report on the top cut.
type eventFlags struct {
	EventConfig
	cmd     *cobra.Command
	root    *rootOptions
	needCut bool
}

func bindEventFlags(cmd *cobra.Command, root *rootOptions,
	needCut bool) *eventFlags {

	ef := &eventFlags{
		EventConfig: defaultEventConfig(),
		cmd:         cmd,
		root:        root,
		needCut:     needCut,
	}
	fs := cmd.Flags()
	fs.StringVarP(&ef.Pairings, "pairings", "p", "",
		`Pairings file (path, "-" for stdin, or s3://bucket/key)`)
	fs.StringVarP(&ef.Tournament, "tournament", "t", "",
		"cobr.ai tournament id to scrape pairings from")
	fs.IntVarP(&ef.Rounds, "round-count", "r", 0,
		fmt.Sprintf("Number of swiss rounds (1-%d)", maxRounds))
	if needCut {
		fs.IntVarP(&ef.CutSize, "cut-size", "c", 0,
			fmt.Sprintf("Number of players in the top cut (1-%d)", maxCutSize))
	}
	fs.StringVar(&ef.Date, "date", "", "Event date shown in the report header")

	return ef
}

// resolve merges the --config file with any flags set on the command line.
func (ef *eventFlags) resolve() (EventConfig, error) {
	cfg, err := loadEventConfig(ef.root.configPath)
	if err != nil {
		return cfg, err
	}

	fs := ef.cmd.Flags()
	override := map[string]func(){
		"pairings":     func() { cfg.Pairings = ef.Pairings },
		"tournament":   func() { cfg.Tournament = ef.Tournament },
		"round-count":  func() { cfg.Rounds = ef.Rounds },
		"cut-size":     func() { cfg.CutSize = ef.CutSize },
		"date":         func() { cfg.Date = ef.Date },
		"two-for-one":  func() { cfg.TwoForOne = ef.TwoForOne },
		"scenario-max": func() { cfg.ScenarioMax = ef.ScenarioMax },
	}
	for name, apply := range override {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			apply()
		}
	}

	return cfg, cfg.validate(ef.needCut)
}

// validate checks cfg. The cut size is only checked when needCut is set.
func (cfg EventConfig) validate(needCut bool) error {
	if (cfg.Pairings == "") == (cfg.Tournament == "") {
		return fmt.Errorf("exactly one of --pairings or --tournament is required")
	}
	if cfg.Rounds < 1 || cfg.Rounds > maxRounds {
		return fmt.Errorf("--round-count must be between 1 and %d (got %d)",
			maxRounds, cfg.Rounds)
	}
	if needCut && (cfg.CutSize < 1 || cfg.CutSize > maxCutSize) {
		return fmt.Errorf("--cut-size must be between 1 and %d (got %d)",
			maxCutSize, cfg.CutSize)
	}
	if cfg.ScenarioMax < 1 || cfg.ScenarioMax > maxScenarioMax {
		return fmt.Errorf("--scenario-max must be between 1 and %d (got %d)",
			maxScenarioMax, cfg.ScenarioMax)
	}
	if _, err := internal.ParseDateOrZero(cfg.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", cfg.Date, err)
	}
	return nil
}

func (cfg EventConfig) options() outcomes.Options {
	return outcomes.Options{
		Rounds:    cfg.Rounds,
		CutSize:   cfg.CutSize,
		TwoForOne: cfg.TwoForOne,
	}
}

// loadField reads the event's pairings and normalizes them. Name and Date
// are filled in from the scraped page when the config leaves them empty.
func (ef *eventFlags) loadField(ctx context.Context,
	cfg *EventConfig) (*outcomes.Field, error) {

	start := time.Now()

	var lines []string
	if cfg.Tournament != "" {
		tourney, err := cobrai.NewClient(ctx).FetchTournament(ctx,
			cobrai.TournamentID(cfg.Tournament))
		if err != nil {
			return nil, err
		}
		lines = tourney.Lines
		if cfg.Name == "" {
			cfg.Name = tourney.Name
		}
		if cfg.Date == "" {
			cfg.Date = internal.FormatDate(tourney.Date)
		}
	} else {
		var err error
		lines, err = internal.ReadPairingLines(ctx, cfg.Pairings)
		if err != nil {
			return nil, err
		}
	}

	recs, err := outcomes.ParseRecords(lines)
	if err != nil {
		return nil, err
	}
	f, err := outcomes.Normalize(recs)
	if err != nil {
		return nil, err
	}
	ef.root.debugField(f)
	ef.root.debugf(1, "swisscut.load: %d pairings read in %v", len(recs),
		time.Since(start))

	return f, nil
}

// header is the event name and date line, if either is known.
func (cfg EventConfig) header() string {
	d, _ := internal.ParseDateOrZero(cfg.Date)
	parts := []string{}
	if cfg.Name != "" {
		parts = append(parts, cfg.Name)
	}
	if !d.IsZero() {
		parts = append(parts, internal.FormatDate(d))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " - ") + "\n\n"
}

func (ro *rootOptions) debugf(level int, format string, args ...any) {
	if ro.debugLevel >= level {
		log.Printf(format, args...)
	}
}

func (ro *rootOptions) debugField(f *outcomes.Field) {
	if ro.debugLevel < 2 {
		return
	}
	players := make([]string, 0, len(f.Scores))
	for p := range f.Scores {
		players = append(players, p)
	}
	sort.Strings(players)

	log.Printf("OPPONENTS:")
	for _, p := range players {
		log.Printf("  %s : %v", p, f.Opponents.Sorted(p))
	}
	log.Printf("SCORES:")
	for _, p := range players {
		log.Printf("  %s : %d", p, f.Scores[p])
	}
	log.Printf("OPEN RESULTS:")
	for _, p := range f.Free.Sorted() {
		log.Printf("  %s vs %s", p.Left, p.Right)
	}
}
