package planner

import "fmt"

// RefWarning reports a dangling id reference between entities. Removals do
// not cascade, so these accumulate until the user fixes or re-adds the
// target; the solver is expected to tolerate them.
type RefWarning struct {
	Kind     string `json:"kind"` // "excluded_yard" or "linked_yard"
	SourceID int    `json:"source_id"`
	TargetID int    `json:"target_id"`
	Message  string `json:"message"`
}

// ValidateReferences walks every cross-entity id reference and reports the
// ones that no longer resolve. Run after any mutation.
func (p *Planner) ValidateReferences() []RefWarning {
	yardIDs := map[int]bool{}
	for _, y := range p.CarYards {
		yardIDs[y.ID] = true
	}

	var warnings []RefWarning
	for _, e := range p.Employees {
		for _, id := range e.ExcludedYards {
			if !yardIDs[id] {
				warnings = append(warnings, RefWarning{
					Kind:     "excluded_yard",
					SourceID: e.ID,
					TargetID: id,
					Message:  fmt.Sprintf("employee %q excludes unknown yard %d", e.Name, id),
				})
			}
		}
	}

	for _, y := range p.CarYards {
		if y.LinkedYard == nil {
			continue
		}
		target := y.LinkedYard.OtherYardID
		switch {
		case target == y.ID:
			warnings = append(warnings, RefWarning{
				Kind:     "linked_yard",
				SourceID: y.ID,
				TargetID: target,
				Message:  fmt.Sprintf("yard %q links to itself", y.Name),
			})
		case !yardIDs[target]:
			warnings = append(warnings, RefWarning{
				Kind:     "linked_yard",
				SourceID: y.ID,
				TargetID: target,
				Message:  fmt.Sprintf("yard %q links to unknown yard %d", y.Name, target),
			})
		}
	}

	return warnings
}
