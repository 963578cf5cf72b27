package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotapulse/imp-api/internal/models"
)

func TestDefaultCoefficientsValid(t *testing.T) {
	book := DefaultCoefficients()
	if err := book.Validate(); err != nil {
		t.Fatalf("default book must validate: %v", err)
	}

	for _, role := range models.RolesByFarmPriority {
		m, err := book.Model(role)
		if err != nil {
			t.Errorf("role %s: %v", role, err)
			continue
		}
		if len(m.Weights) == 0 {
			t.Errorf("role %s: empty weight set", role)
		}
	}

	// Support models must weigh assists harder than kills; farm models the
	// other way around.
	carry, _ := book.Model(models.RoleCarry)
	hard, _ := book.Model(models.RoleHardSupport)
	if hard.Weights[FeatAssists] <= carry.Weights[FeatAssists] {
		t.Error("support model should weigh assists at least as much as the carry model")
	}
}

func TestModelUnknownRole(t *testing.T) {
	if _, err := DefaultCoefficients().Model(models.Role("roamer")); err == nil {
		t.Fatal("unknown role must return a configuration error")
	}
}

func TestLoadCoefficientsEmptyPath(t *testing.T) {
	book, err := LoadCoefficients("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Bound != 65 || book.WinBonus != 8 {
		t.Errorf("empty path must return defaults, got %+v", book)
	}
}

func TestLoadCoefficientsOverride(t *testing.T) {
	doc := `
win_bonus: 10
scale: 1.0
roles:
  mid:
    intercept: 1.5
    weights:
      gpm: 0.02
      deaths: -2.5
`
	path := filepath.Join(t.TempDir(), "coefficients.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	book, err := LoadCoefficients(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if book.WinBonus != 10 || book.Scale != 1.0 {
		t.Errorf("overridden constants not applied: %+v", book)
	}
	// Untouched constants keep their defaults.
	if book.Bound != 65 || book.LossPenalty != 30 {
		t.Errorf("defaults lost during override: %+v", book)
	}

	mid, err := book.Model(models.RoleMid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mid.Intercept != 1.5 || mid.Weights[FeatGPM] != 0.02 {
		t.Errorf("mid model not overridden: %+v", mid)
	}

	// Roles absent from the document keep their built-in models.
	carry, err := book.Model(models.RoleCarry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if carry.Weights[FeatKillsPerMin] == 0 {
		t.Errorf("carry model lost during override: %+v", carry)
	}
}

func TestLoadCoefficientsMissingFile(t *testing.T) {
	if _, err := LoadCoefficients("/nonexistent/coefficients.yaml"); err == nil {
		t.Fatal("missing file must fail loudly, not fall back silently")
	}
}

func TestValidateRejectsBrokenBooks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CoefficientBook)
	}{
		{"Zero bound", func(b *CoefficientBook) { b.Bound = 0 }},
		{"Negative scale", func(b *CoefficientBook) { b.Scale = -1 }},
		{"Missing role", func(b *CoefficientBook) { delete(b.Roles, string(models.RoleOfflane)) }},
		{"Empty weights", func(b *CoefficientBook) {
			b.Roles[string(models.RoleCarry)] = RoleModel{Intercept: 1}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := DefaultCoefficients()
			tt.mutate(book)
			if err := book.Validate(); err == nil {
				t.Error("broken book must not validate")
			}
		})
	}
}
