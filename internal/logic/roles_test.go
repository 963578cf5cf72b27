package logic

import (
	"testing"

	"github.com/dotapulse/imp-api/internal/models"
)

func tenPlayers(radiantWorth, direWorth [5]int) []models.ParticipantRecord {
	players := make([]models.ParticipantRecord, 0, 10)
	for _, nw := range radiantWorth {
		players = append(players, models.ParticipantRecord{IsRadiant: true, NetWorth: nw})
	}
	for _, nw := range direWorth {
		players = append(players, models.ParticipantRecord{IsRadiant: false, NetWorth: nw})
	}
	return players
}

func TestAssignRolesByNetWorth(t *testing.T) {
	players := tenPlayers(
		[5]int{12000, 25000, 8000, 18000, 5000},
		[5]int{9000, 21000, 6000, 15000, 11000},
	)

	roles, err := AssignRoles(players)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 10 {
		t.Fatalf("got %d roles", len(roles))
	}

	wantRadiant := []models.Role{
		models.RoleOfflane,     // 12000: rank 2
		models.RoleCarry,       // 25000: rank 0
		models.RoleSupport,     // 8000: rank 3
		models.RoleMid,         // 18000: rank 1
		models.RoleHardSupport, // 5000: rank 4
	}
	for i, want := range wantRadiant {
		if roles[i] != want {
			t.Errorf("radiant player %d: role = %s, want %s", i, roles[i], want)
		}
	}

	wantDire := []models.Role{
		models.RoleSupport,     // 9000: rank 3
		models.RoleCarry,       // 21000: rank 0
		models.RoleHardSupport, // 6000: rank 4
		models.RoleMid,         // 15000: rank 1
		models.RoleOfflane,     // 11000: rank 2
	}
	for i, want := range wantDire {
		if roles[5+i] != want {
			t.Errorf("dire player %d: role = %s, want %s", i, roles[5+i], want)
		}
	}
}

func TestAssignRolesBijectionPerTeam(t *testing.T) {
	players := tenPlayers(
		[5]int{100, 200, 300, 400, 500},
		[5]int{50, 40, 30, 20, 10},
	)
	roles, err := AssignRoles(players)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, team := range [][]models.Role{roles[:5], roles[5:]} {
		seen := map[models.Role]int{}
		for _, r := range team {
			seen[r]++
		}
		for _, want := range models.RolesByFarmPriority {
			if seen[want] != 1 {
				t.Errorf("role %s assigned %d times in one team, want exactly 1", want, seen[want])
			}
		}
	}
}

func TestAssignRolesTiesKeepInputOrder(t *testing.T) {
	players := tenPlayers(
		[5]int{10000, 10000, 10000, 10000, 10000},
		[5]int{1, 2, 3, 4, 5},
	)
	roles, err := AssignRoles(players)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All radiant net worths equal: first listed keeps the highest rank.
	for i, want := range models.RolesByFarmPriority {
		if roles[i] != want {
			t.Errorf("tied player %d: role = %s, want %s", i, roles[i], want)
		}
	}
}

func TestAssignRolesRejectsUnevenTeams(t *testing.T) {
	players := make([]models.ParticipantRecord, 0, 10)
	for i := 0; i < 3; i++ {
		players = append(players, models.ParticipantRecord{IsRadiant: true, NetWorth: 1000})
	}
	for i := 0; i < 7; i++ {
		players = append(players, models.ParticipantRecord{IsRadiant: false, NetWorth: 1000})
	}

	if _, err := AssignRoles(players); err == nil {
		t.Fatal("3v7 must be rejected before role ranking")
	}

	if _, err := AssignRoles(nil); err == nil {
		t.Fatal("empty participant list must be rejected")
	}
}
