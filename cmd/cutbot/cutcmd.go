/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisscut/cobrai"
	"github.com/mikeb26/swisscut/outcomes"
)

type CutSubCommand string

const (
	CutHelpCmd      CutSubCommand = "help"
	CutOddsCmd      CutSubCommand = "odds"
	CutStandingsCmd CutSubCommand = "standings"
)

const (
	maxRounds  = 10
	maxCutSize = 10

	// 3^maxOpenPairings outcomes per player keeps a reply inside discord's
	// interaction deadline
	maxOpenPairings = 10
)

var cutSubCmdHdlrs = map[CutSubCommand]CmdHandler{
	CutHelpCmd:      cutHelpCmdHandler,
	CutOddsCmd:      cutOddsCmdHandler,
	CutStandingsCmd: cutStandingsCmdHandler,
}

// fetchTournament is replaced in main with a client sharing one web cache.
var fetchTournament = func(ctx context.Context,
	id cobrai.TournamentID) (*cobrai.Tournament, error) {

	return cobrai.NewClient(ctx).FetchTournament(ctx, id)
}

func cutCommandDef() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
	tournamentOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "cobr.ai tournament id",
		Required:    true,
	}
	roundsOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "rounds",
		Description: fmt.Sprintf("Number of swiss rounds (1-%d)", maxRounds),
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(CutCmd),
		Description: "Swiss top cut odds; try /cut help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(CutHelpCmd),
				Description: "Show usage for cut",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(CutOddsCmd),
				Description: "Show each player's odds of making the top cut",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOpt,
					roundsOpt,
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "cut",
						Description: fmt.Sprintf("Number of players in the top cut (1-%d)", maxCutSize),
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "List the scenarios in which this player makes the cut",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(CutStandingsCmd),
				Description: "Show standings from the results reported so far",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOpt,
					roundsOpt,
					broadcastOpt,
				},
			},
		},
	}
}

func cutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := cutHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := cutSubCmdHdlrs[CutSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

//go:embed help.md
var helpText string

func cutHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

// eventArgs are the options shared by the odds and standings subcommands.
type eventArgs struct {
	tournament cobrai.TournamentID
	rounds     int
	cut        int
	player     string
	broadcast  bool
}

func parseEventArgs(inter *discordgo.Interaction, needCut bool) (eventArgs,
	error) {

	args := eventArgs{}
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return args, fmt.Errorf("Please provide a tournament id.")
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "tournament":
			args.tournament = cobrai.TournamentID(strings.TrimSpace(
				opt.StringValue()))
		case "rounds":
			args.rounds = int(opt.IntValue())
		case "cut":
			args.cut = int(opt.IntValue())
		case "player":
			args.player = strings.TrimSpace(opt.StringValue())
		case "broadcast":
			args.broadcast = opt.BoolValue()
		}
	}

	if args.tournament == "" {
		return args, fmt.Errorf("Please provide a tournament id.")
	}
	if args.rounds < 1 || args.rounds > maxRounds {
		return args, fmt.Errorf("Please provide a round count between 1 and %d.",
			maxRounds)
	}
	if needCut && (args.cut < 1 || args.cut > maxCutSize) {
		return args, fmt.Errorf("Please provide a cut size between 1 and %d.",
			maxCutSize)
	}

	return args, nil
}

func loadField(ctx context.Context, id cobrai.TournamentID) (*cobrai.Tournament,
	*outcomes.Field, error) {

	tourney, err := fetchTournament(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("Error fetching tournament %v: %w", id, err)
	}
	recs, err := tourney.Records()
	if err != nil {
		return nil, nil, fmt.Errorf("Error reading pairings for %v: %w", id, err)
	}
	f, err := outcomes.Normalize(recs)
	if err != nil {
		return nil, nil, fmt.Errorf("Error reading pairings for %v: %w", id, err)
	}

	return tourney, f, nil
}

// cutOddsCmdHandler handles /cut odds
func cutOddsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	args, err := parseEventArgs(inter, true)
	if err != nil {
		resp.Data.Content = err.Error()
		log.Printf("cutbot.odds: %v", resp.Data.Content)
		return resp
	}

	tourney, f, err := loadField(ctx, args.tournament)
	if err != nil {
		resp.Data.Content = err.Error()
		log.Printf("cutbot.odds: %v", resp.Data.Content)
		return resp
	}
	if len(f.Free) > maxOpenPairings {
		resp.Data.Content = fmt.Sprintf("%v has %d unfinished pairings; odds are only available with %d or fewer.",
			tourney.Name, len(f.Free), maxOpenPairings)
		log.Printf("cutbot.odds: %v", resp.Data.Content)
		return resp
	}

	report, err := outcomes.BuildReport(ctx, f, outcomes.ReportOptions{
		Options: outcomes.Options{
			Rounds:  args.rounds,
			CutSize: args.cut,
		},
		InspectPlayer: args.player,
		ScenarioMax:   outcomes.DefaultScenarioMax,
	})
	if errors.Is(err, outcomes.ErrUnknownPlayer) {
		resp.Data.Content = fmt.Sprintf("%v is not playing in %v.", args.player,
			tourney.Name)
		log.Printf("cutbot.odds: %v", resp.Data.Content)
		return resp
	} else if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing odds for %v: %v",
			args.tournament, err)
		log.Printf("cutbot.odds: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", tourney.Name,
		truncateContent(report))
	if args.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// cutStandingsCmdHandler handles /cut standings
func cutStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	args, err := parseEventArgs(inter, false)
	if err != nil {
		resp.Data.Content = err.Error()
		log.Printf("cutbot.standings: %v", resp.Data.Content)
		return resp
	}

	tourney, f, err := loadField(ctx, args.tournament)
	if err != nil {
		resp.Data.Content = err.Error()
		log.Printf("cutbot.standings: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for idx, s := range outcomes.Rank(f.Scores, f.Opponents, args.rounds) {
		sb.WriteString(fmt.Sprintf("%2d: %v\n", idx+1, s))
	}

	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", tourney.Name,
		truncateContent(sb.String()))
	if args.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1900 // keep space for the title and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
