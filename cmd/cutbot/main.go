/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swisscut/cobrai"
)

// secrets and registration state come from the environment
const (
	tokenEnv   = "CUTBOT_TOKEN"
	pubKeyEnv  = "CUTBOT_PUBKEY"
	appIdEnv   = "CUTBOT_APPID"
	cmdIdEnv   = "CUTBOT_CMDID"
	cmdHashEnv = "CUTBOT_CMDHASH"
)

const listenAddr = ":8080"

var (
	botPubKey ed25519.PublicKey
	botAppId  string
	client    *discordgo.Session
)

type TopLevelCommand string

const CutCmd TopLevelCommand = "cut"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	CutCmd: cutCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("cutbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("cutbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("cutbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("cutbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("cutbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("cutbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch routes a verified interaction to its handler. It returns nil for
// interaction types the bot doesn't support.
func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			return &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}
		}
		return hdlr(ctx, inter)
	}

	return nil
}

func loadSecrets() error {
	token := strings.TrimSpace(os.Getenv(tokenEnv))
	pubKeyText := strings.TrimSpace(os.Getenv(pubKeyEnv))
	botAppId = strings.TrimSpace(os.Getenv(appIdEnv))
	if token == "" || pubKeyText == "" || botAppId == "" {
		return fmt.Errorf("%v, %v and %v must all be set", tokenEnv, pubKeyEnv,
			appIdEnv)
	}

	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return fmt.Errorf("public key must be %v bytes (got %v)",
			ed25519.PublicKeySize, len(pubKeyBytes))
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to initialize discord client: %w", err)
	}

	return nil
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	hexString, err := cmdRegistrationHash(cmd)
	if err != nil {
		log.Printf("cutbot.reg: failed to marshal cmd: %v", err)
		return false
	}

	shouldUpdate := (hexString != os.Getenv(cmdHashEnv))
	if shouldUpdate {
		log.Printf("cutbot.reg: updating cmd reg; please set %v to %v",
			cmdHashEnv, hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	cutCmd := cutCommandDef()
	cmdId := os.Getenv(cmdIdEnv)

	if cmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", cutCmd)
		if err != nil {
			log.Printf("cutbot.reg: failed to register %v: %v", cutCmd.Name,
				err)
			return
		}

		log.Printf("cutbot.reg: registered %v(cmdID:%v); please set %v",
			cmd.Name, cmd.ID, cmdIdEnv)
	} else if shouldUpdateCmdRegistration(cutCmd) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", cmdId, cutCmd)
		if err != nil {
			log.Printf("cutbot.reg: failed to update %v: %v", cutCmd.Name,
				err)
			return
		}

		log.Printf("cutbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	if err := loadSecrets(); err != nil {
		log.Fatalf("cutbot.init: %v", err)
	}

	ctx := context.Background()
	cobraiClient := cobrai.NewClient(ctx)
	fetchTournament = cobraiClient.FetchTournament

	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("cutbot.main: starting server on %v%v", hostname, listenAddr)

	http.HandleFunc("/CutBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatalf("cutbot.main: Serve failed: %v", err)
	}

	log.Printf("cutbot.main: exiting")
}
