/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
)

// ByeName is the reserved opponent name used for a round without a live
// opponent.
const ByeName = "(Bye)"

// LinesPerRecord is the number of input lines describing one pairing.
const LinesPerRecord = 4

// OpponentMap maps a player to the set of everyone they have been paired with.
type OpponentMap map[string]map[string]struct{}

// ScoreMap maps a player to their cumulative settled score.
type ScoreMap map[string]int

// FreeMap maps the left side of an undecided pairing to its right side.
type FreeMap map[string]string

// Record is one pairing as read from the input. A nil result means the
// pairing has not been reported yet.
type Record struct {
	Left        string
	LeftResult  *int
	Right       string
	RightResult *int
}

// IsFree reports whether either side of the pairing is still undecided.
func (r Record) IsFree() bool {
	return r.LeftResult == nil || r.RightResult == nil
}

// Lines renders the record back into the 4 line input format.
func (r Record) Lines() []string {
	return []string{r.Left, resultToString(r.LeftResult), r.Right,
		resultToString(r.RightResult)}
}

func resultToString(res *int) string {
	if res == nil {
		return ""
	}
	return strconv.Itoa(*res)
}

// Field is the normalized state of a tournament: who played whom, the
// settled scores, and the pairings still in play.
type Field struct {
	Opponents OpponentMap
	Scores    ScoreMap
	Free      FreeMap
}

// ParseRecords groups the flat input lines 4 at a time into Records.
func ParseRecords(lines []string) ([]Record, error) {
	if len(lines)%LinesPerRecord != 0 {
		return nil, &RecordError{
			Index: len(lines) - len(lines)%LinesPerRecord,
			Field: "record",
			Value: fmt.Sprintf("%v trailing lines", len(lines)%LinesPerRecord),
			Err:   ErrMalformedRecord,
		}
	}

	records := make([]Record, 0, len(lines)/LinesPerRecord)
	for i := 0; i < len(lines); i += LinesPerRecord {
		var rec Record
		var err error

		if rec.Left, err = parseName(lines, i, "left name"); err != nil {
			return nil, err
		}
		if rec.LeftResult, err = parseResult(lines, i+1,
			"left result"); err != nil {
			return nil, err
		}
		if rec.Right, err = parseName(lines, i+2, "right name"); err != nil {
			return nil, err
		}
		if rec.RightResult, err = parseResult(lines, i+3,
			"right result"); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseName(lines []string, idx int, field string) (string, error) {
	name := strings.TrimSpace(lines[idx])
	if name == "" {
		return "", &RecordError{Index: idx, Field: field, Value: lines[idx],
			Err: ErrMalformedRecord}
	}
	return name, nil
}

// parseResult accepts "" (undecided) or an integer optionally followed by
// free text, e.g. "6 (2-0)".
func parseResult(lines []string, idx int, field string) (*int, error) {
	fields := strings.Fields(lines[idx])
	if len(fields) == 0 {
		return nil, nil
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, &RecordError{Index: idx, Field: field, Value: lines[idx],
			Err: fmt.Errorf("%w: %w", ErrMalformedRecord, err)}
	}
	return &v, nil
}

// Normalize builds the opponent, score and free maps from the full pairing
// history. Every player seen in any record gets a score entry, starting at 0.
func Normalize(records []Record) (*Field, error) {
	f := &Field{
		Opponents: make(OpponentMap),
		Scores:    make(ScoreMap),
		Free:      make(FreeMap),
	}

	for idx, rec := range records {
		if rec.Left == rec.Right {
			return nil, &RecordError{Index: idx * LinesPerRecord,
				Field: "record", Value: rec.Left,
				Err: fmt.Errorf("%w: player paired with themself",
					ErrMalformedRecord)}
		}
		f.Opponents.add(rec.Left, rec.Right)
		f.Opponents.add(rec.Right, rec.Left)
		f.Scores.touch(rec.Left)
		f.Scores.touch(rec.Right)

		if !rec.IsFree() {
			f.Scores[rec.Left] += *rec.LeftResult
			f.Scores[rec.Right] += *rec.RightResult
			continue
		}

		if rec.LeftResult != nil || rec.RightResult != nil {
			log.Printf("outcomes.normalize: %v vs %v has a one sided result; treating as undecided",
				rec.Left, rec.Right)
		}
		if other, ok := f.Free[rec.Left]; ok {
			return nil, &RecordError{Index: idx * LinesPerRecord,
				Field: "left name", Value: rec.Left,
				Err: fmt.Errorf("%w: already has an undecided pairing vs %v",
					ErrMalformedRecord, other)}
		}
		f.Free[rec.Left] = rec.Right
	}

	return f, nil
}

func (opps OpponentMap) add(player string, opponent string) {
	set, ok := opps[player]
	if !ok {
		set = make(map[string]struct{})
		opps[player] = set
	}
	set[opponent] = struct{}{}
}

// Has reports whether player was paired with opponent.
func (opps OpponentMap) Has(player string, opponent string) bool {
	_, ok := opps[player][opponent]
	return ok
}

// Sorted returns player's opponents in name order.
func (opps OpponentMap) Sorted(player string) []string {
	ret := make([]string, 0, len(opps[player]))
	for o := range opps[player] {
		ret = append(ret, o)
	}
	sort.Strings(ret)
	return ret
}

func (scores ScoreMap) touch(player string) {
	if _, ok := scores[player]; !ok {
		scores[player] = 0
	}
}

// Clone returns an independent copy of scores.
func (scores ScoreMap) Clone() ScoreMap {
	ret := make(ScoreMap, len(scores))
	for k, v := range scores {
		ret[k] = v
	}
	return ret
}

// Pairing is one undecided pairing, left side first.
type Pairing struct {
	Left  string
	Right string
}

// Sorted returns the undecided pairings ordered by left name. This is the
// order in which the enumerator resolves them.
func (free FreeMap) Sorted() []Pairing {
	ret := make([]Pairing, 0, len(free))
	for l, r := range free {
		ret = append(ret, Pairing{Left: l, Right: r})
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Left < ret[j].Left
	})
	return ret
}

// Players returns every name taking part in an undecided pairing, sorted.
func (free FreeMap) Players() []string {
	seen := make(map[string]struct{}, 2*len(free))
	for l, r := range free {
		seen[l] = struct{}{}
		seen[r] = struct{}{}
	}
	ret := make([]string, 0, len(seen))
	for p := range seen {
		ret = append(ret, p)
	}
	sort.Strings(ret)
	return ret
}

// find returns the first undecided pairing (in resolution order) involving
// player, along with the remaining pairings.
func (free FreeMap) find(player string) (Pairing, []Pairing, bool) {
	sorted := free.Sorted()
	for idx, p := range sorted {
		if p.Left == player || p.Right == player {
			rest := make([]Pairing, 0, len(sorted)-1)
			rest = append(rest, sorted[:idx]...)
			rest = append(rest, sorted[idx+1:]...)
			return p, rest, true
		}
	}
	return Pairing{}, nil, false
}
