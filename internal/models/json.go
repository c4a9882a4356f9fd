package models

import (
	"encoding/json"
	"fmt"
)

// PerWeek and LinkedYard travel as two-element JSON arrays, e.g.
// "per_week": [2, 4] and "linked_yard": [3, 3]. The solver contract
// requires this shape exactly.

func (p PerWeek) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.VisitsRequired, p.GapDays})
}

func (p *PerWeek) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("per_week: expected [visits, gap_days], got %d elements", len(pair))
	}
	p.VisitsRequired = pair[0]
	p.GapDays = pair[1]
	return nil
}

func (l LinkedYard) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{l.OtherYardID, l.GapDays})
}

func (l *LinkedYard) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("linked_yard: expected [other_yard_id, gap_days], got %d elements", len(pair))
	}
	l.OtherYardID = pair[0]
	l.GapDays = pair[1]
	return nil
}
