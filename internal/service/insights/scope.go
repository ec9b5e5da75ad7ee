package insights

import "fmt"

// Scope is the audience filter of an aggregate request.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeTeam   Scope = "team"
	ScopeMe     Scope = "me"
)

// resolveScope computes the included project set and, for team/me scopes,
// the allowed employee set (nil means everyone). Projects arrive already
// stripped of archived entries.
func resolveScope(scope Scope, employeeID int64, snap *snapshot) ([]int64, map[int64]bool, error) {
	const op = "insights.resolveScope"

	switch scope {
	case ScopeGlobal:
		ids := make([]int64, 0, len(snap.Projects))
		for _, p := range snap.Projects {
			ids = append(ids, p.ID)
		}
		return ids, nil, nil

	case ScopeTeam:
		requester, ok := snap.employee(employeeID)
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w: unknown employee %d", op, ErrInvalidRequest, employeeID)
		}

		profile := ResolveProfile(requester.Team)
		allowed := make(map[int64]bool)
		for _, e := range snap.Employees {
			if ResolveProfile(e.Team) == profile {
				allowed[e.ID] = true
			}
		}

		return projectsAssignedTo(snap, allowed), allowed, nil

	case ScopeMe:
		if _, ok := snap.employee(employeeID); !ok {
			return nil, nil, fmt.Errorf("%s: %w: unknown employee %d", op, ErrInvalidRequest, employeeID)
		}

		allowed := map[int64]bool{employeeID: true}
		return projectsAssignedTo(snap, allowed), allowed, nil

	default:
		return nil, nil, fmt.Errorf("%s: %w: unknown scope %q", op, ErrInvalidRequest, scope)
	}
}

// projectsAssignedTo returns the non-archived projects having at least one
// assignment inside the employee set, in snapshot (code) order.
func projectsAssignedTo(snap *snapshot, employees map[int64]bool) []int64 {
	included := make(map[int64]bool)
	for _, a := range snap.Assignments {
		if employees[a.EmployeeID] {
			included[a.ProjectID] = true
		}
	}

	var ids []int64
	for _, p := range snap.Projects {
		if included[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
