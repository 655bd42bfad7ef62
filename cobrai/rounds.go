/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package cobrai retrieves Swiss pairings from cobr.ai tournament pages and
// renders them as the flat 4 line records the outcomes package consumes.
package cobrai

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swisscut/internal"
	"github.com/mikeb26/swisscut/outcomes"
)

// TournamentID identifies a tournament on cobr.ai.
type TournamentID string

// Tournament is the Swiss portion of a cobr.ai event.
type Tournament struct {
	ID   TournamentID
	Name string
	Date time.Time
	// Lines holds every Swiss pairing in the 4 line input format.
	Lines []string
}

// Records parses t.Lines.
func (t *Tournament) Records() ([]outcomes.Record, error) {
	return outcomes.ParseRecords(t.Lines)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client whose page fetches go through the shared web
// cache. Rounds pages change while an event is running so entries only
// live for a few minutes.
func NewClient(ctx context.Context) *Client {
	return NewClientWithHTTP(internal.NewCachedHttpClient(ctx, 5*time.Minute),
		internal.CobraiBaseURL)
}

// NewClientWithHTTP returns a Client using hc against baseURL.
func NewClientWithHTTP(hc *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// RoundsURL returns the page listing every round of tournament id.
func (client *Client) RoundsURL(id TournamentID) string {
	return fmt.Sprintf("%v/tournaments/%v/rounds", client.baseURL, id)
}

// FetchTournament retrieves and parses the rounds page for id.
func (client *Client) FetchTournament(ctx context.Context,
	id TournamentID) (*Tournament, error) {

	url := client.RoundsURL(id)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch cobr.ai tournament (new): %w",
			err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch cobr.ai tournament (do): %w",
			err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch %v: http status: %v", url,
			resp.StatusCode)
	}

	t, err := ParseRounds(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", url, err)
	}
	t.ID = id

	return t, nil
}

// ParseRounds extracts the Swiss pairings from a rounds page. Elimination
// brackets on the same page are skipped.
func ParseRounds(r io.Reader) (*Tournament, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	t := &Tournament{
		Name: parseName(doc),
		Date: parseDate(doc),
	}
	doc.Find("div.accordion").Each(func(_ int, block *goquery.Selection) {
		if strings.TrimSpace(block.Find("h4").First().Text()) != "Swiss" {
			return
		}
		block.Find("div.round_pairing").Each(func(_ int,
			row *goquery.Selection) {

			if lines, ok := parsePairingRow(row); ok {
				t.Lines = append(t.Lines, lines...)
			}
		})
	})

	if len(t.Lines) == 0 {
		return nil, fmt.Errorf("no swiss pairings found")
	}

	return t, nil
}

// parsePairingRow renders a single pairing row. The player name is the
// leading text of its div; anything nested after it (pronouns, ids) is
// ignored.
func parsePairingRow(row *goquery.Selection) ([]string, bool) {
	left := strings.TrimSpace(
		row.Find("div.left_player_name").Contents().First().Text())
	right := strings.TrimSpace(
		row.Find("div.right_player_name").Contents().First().Text())
	if left == "" || right == "" {
		return nil, false
	}

	leftScore, rightScore := splitScore(
		row.Find("div.centre_score").Text())

	return []string{left, leftScore, right, rightScore}, true
}

// splitScore splits "6 - 0" into its two sides. A pairing that hasn't been
// reported shows no digits and yields two empty results.
func splitScore(s string) (string, string) {
	if strings.IndexFunc(s, unicode.IsDigit) < 0 {
		return "", ""
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		log.Printf("cobrai.parse: unexpected score %q; treating as unreported",
			s)
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func parseName(doc *goquery.Document) string {
	if name := strings.TrimSpace(doc.Find("h1").First().Text()); name != "" {
		return name
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// parseDate looks for the event date in a <time> element, preferring its
// machine readable datetime attribute.
func parseDate(doc *goquery.Document) time.Time {
	sel := doc.Find("time").First()
	if sel.Length() == 0 {
		return time.Time{}
	}
	raw, ok := sel.Attr("datetime")
	if !ok {
		raw = sel.Text()
	}
	d, err := internal.ParseDateOrZero(raw)
	if err != nil {
		log.Printf("cobrai.parse: unable to parse event date %q: %v", raw, err)
		return time.Time{}
	}
	return d
}
