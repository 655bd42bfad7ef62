/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"fmt"
	"sort"
)

// Odd is one player's chance of making the cut.
type Odd struct {
	Name    string
	Count   int
	Percent float64
}

func (o Odd) String() string {
	return fmt.Sprintf("%-20s %7.3f%%", o.Name, o.Percent)
}

// Percent returns the percentage of outcomes in which player makes the cut.
//
// Each leaf hands out CutSize slots, so count/Slots()*100*CutSize is the
// share of leaves. That is count/Leaves*100, which is what is computed here;
// the two agree whenever every leaf fills the cut, and the latter stays
// correct for a field smaller than the cut.
func (t *Tally) Percent(player string) (float64, error) {
	if t.Leaves == 0 {
		return 0, ErrNoOutcomes
	}
	return float64(t.Counts[player]) / float64(t.Leaves) * 100, nil
}

// Percentages converts t into per player odds, best first. Players who never
// make the cut are omitted.
func (t *Tally) Percentages() ([]Odd, error) {
	if t.Leaves == 0 {
		return nil, ErrNoOutcomes
	}

	odds := make([]Odd, 0, len(t.Counts))
	for name, count := range t.Counts {
		if name == ByeName || count == 0 {
			continue
		}
		pct, _ := t.Percent(name)
		odds = append(odds, Odd{Name: name, Count: count, Percent: pct})
	}
	sort.Slice(odds, func(i, j int) bool {
		if odds[i].Percent != odds[j].Percent {
			return odds[i].Percent > odds[j].Percent
		}
		return odds[i].Name < odds[j].Name
	})

	return odds, nil
}

// Clinched reports whether player made the cut in every leaf.
func (t *Tally) Clinched(player string) bool {
	return t.Leaves > 0 && t.Counts[player] == t.Leaves
}
