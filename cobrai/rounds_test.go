/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package cobrai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikeb26/swisscut/internal"
	"github.com/mikeb26/swisscut/outcomes"
)

const roundsPage = `<html>
<head><title>Rounds - Cobra</title></head>
<body>
<h1>Circuit Opener: Boston</h1>
<p>Held on <time datetime="2026-03-14">March 14th</time></p>
<div class="accordion">
  <h4>Swiss</h4>
  <div class="round_pairing">
    <div class="left_player_name">Alice <span class="pronouns">she/her</span></div>
    <div class="centre_score">6 - 0</div>
    <div class="right_player_name">Bob</div>
  </div>
  <div class="round_pairing">
    <div class="left_player_name">Carol</div>
    <div class="centre_score">6 - 0</div>
    <div class="right_player_name">(Bye)</div>
  </div>
  <div class="round_pairing">
    <div class="left_player_name">Alice</div>
    <div class="centre_score"> - </div>
    <div class="right_player_name">Carol</div>
  </div>
</div>
<div class="accordion">
  <h4>Double Elimination</h4>
  <div class="round_pairing">
    <div class="left_player_name">Alice</div>
    <div class="centre_score">3 - 0</div>
    <div class="right_player_name">Carol</div>
  </div>
</div>
</body>
</html>`

func TestParseRounds(t *testing.T) {
	tourney, err := ParseRounds(strings.NewReader(roundsPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Alice", "6", "Bob", "0",
		"Carol", "6", outcomes.ByeName, "0",
		"Alice", "", "Carol", "",
	}
	if strings.Join(tourney.Lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q; want %q", tourney.Lines, want)
	}
	if tourney.Name != "Circuit Opener: Boston" {
		t.Errorf("name = %q", tourney.Name)
	}
	if internal.FormatDate(tourney.Date) != "2026-03-14" {
		t.Errorf("date = %v", tourney.Date)
	}

	recs, err := tourney.Records()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 || !recs[2].IsFree() {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestParseRoundsNoSwiss(t *testing.T) {
	_, err := ParseRounds(strings.NewReader("<html><body></body></html>"))
	if err == nil {
		t.Fatalf("expected an error for a page without swiss rounds")
	}
}

func TestSplitScore(t *testing.T) {
	cases := []struct {
		in          string
		left, right string
	}{
		{"6 - 0", "6", "0"},
		{" 3 - 3 ", "3", "3"},
		{"", "", ""},
		{" - ", "", ""},
		{"6", "", ""},
	}
	for _, c := range cases {
		l, r := splitScore(c.in)
		if l != c.left || r != c.right {
			t.Errorf("splitScore(%q) = %q, %q; want %q, %q", c.in, l, r,
				c.left, c.right)
		}
	}
}

func TestFetchTournament(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		if r.URL.Path != "/tournaments/4242/rounds" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, roundsPage)
	}))
	defer srv.Close()

	client := NewClientWithHTTP(srv.Client(), srv.URL+"/")
	tourney, err := client.FetchTournament(context.Background(), "4242")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tourney.ID != "4242" || len(tourney.Lines) != 12 {
		t.Errorf("unexpected tournament %+v", tourney)
	}

	if _, err := client.FetchTournament(context.Background(),
		"9999"); err == nil {
		t.Errorf("expected an error for a missing tournament")
	}
}
