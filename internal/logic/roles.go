package logic

import (
	"fmt"
	"sort"

	"github.com/dotapulse/imp-api/internal/models"
)

// AssignRoles infers a role for each participant by ranking net worth
// within each team: the richest player takes position 1 (carry) down to the
// poorest at position 5 (hard support). Ties keep input order. This is a
// heuristic — net worth correlates with lane role but does not prove it —
// and upstream data carries no authoritative role signal for all matches.
//
// The returned slice is index-aligned with the input.
func AssignRoles(participants []models.ParticipantRecord) ([]models.Role, error) {
	var radiant, dire []int
	for i := range participants {
		if participants[i].IsRadiant {
			radiant = append(radiant, i)
		} else {
			dire = append(dire, i)
		}
	}
	if len(radiant) != 5 || len(dire) != 5 {
		return nil, fmt.Errorf("role ranking requires 5 participants per team, got %d radiant / %d dire",
			len(radiant), len(dire))
	}

	roles := make([]models.Role, len(participants))
	rankTeam(participants, radiant, roles)
	rankTeam(participants, dire, roles)
	return roles, nil
}

func rankTeam(participants []models.ParticipantRecord, team []int, roles []models.Role) {
	sort.SliceStable(team, func(a, b int) bool {
		return participants[team[a]].NetWorth > participants[team[b]].NetWorth
	})
	for rank, idx := range team {
		roles[idx] = models.RolesByFarmPriority[rank]
	}
}
