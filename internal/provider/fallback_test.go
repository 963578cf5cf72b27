package provider

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/models"
)

func rateLimitErr(source string) error {
	return &Error{Source: source, Op: "fetch_match", StatusCode: 429, Kind: KindRateLimited}
}

func TestOrchestratorFallsBackOnRateLimitOnly(t *testing.T) {
	tests := []struct {
		name          string
		primaryErr    error
		secondaryErr  error
		wantErr       error
		wantFallbacks int64
		wantSecondary bool
	}{
		{
			name: "Primary succeeds, secondary untouched",
		},
		{
			name:          "Rate limit triggers fallback",
			primaryErr:    rateLimitErr("opendota"),
			wantFallbacks: 1,
			wantSecondary: true,
		},
		{
			name:       "Not found never falls back",
			primaryErr: &Error{Source: "opendota", Op: "fetch_match", StatusCode: 404, Kind: KindNotFound},
			wantErr:    &Error{Kind: KindNotFound},
		},
		{
			name:       "Unavailable (timeout) never falls back",
			primaryErr: &Error{Source: "opendota", Op: "fetch_match", Kind: KindUnavailable},
			wantErr:    &Error{Kind: KindUnavailable},
		},
		{
			name:       "Unauthenticated never falls back",
			primaryErr: &Error{Source: "opendota", Op: "fetch_match", StatusCode: 401, Kind: KindUnauthenticated},
			wantErr:    &Error{Kind: KindUnauthenticated},
		},
		{
			name:          "Both fail: primary error surfaces",
			primaryErr:    rateLimitErr("opendota"),
			secondaryErr:  &Error{Source: "stratz", Op: "fetch_match", StatusCode: 500, Kind: KindUnavailable},
			wantErr:       &Error{Kind: KindRateLimited},
			wantFallbacks: 1,
			wantSecondary: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &MockClient{NameValue: "opendota"}
			secondary := &MockClient{NameValue: "stratz"}
			if tt.primaryErr != nil {
				primary.FetchMatchFunc = func(ctx context.Context, id int64) (*models.MatchRecord, error) {
					return nil, tt.primaryErr
				}
			}
			if tt.secondaryErr != nil {
				secondary.FetchMatchFunc = func(ctx context.Context, id int64) (*models.MatchRecord, error) {
					return nil, tt.secondaryErr
				}
			}

			o := NewOrchestrator(primary, secondary, zap.NewNop())
			match, err := o.FetchMatch(context.Background(), 42)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if match == nil || match.MatchID != 42 {
					t.Fatalf("unexpected match: %+v", match)
				}
			} else {
				want := tt.wantErr.(*Error)
				if !isKind(err, want.Kind) {
					t.Fatalf("error kind = %v, want %v", err, want.Kind)
				}
				// The surfaced error must carry the primary's source.
				var pe *Error
				if !errors.As(err, &pe) || pe.Source != "opendota" {
					t.Errorf("surfaced error = %v, want primary's", err)
				}
			}

			if got := o.Fallbacks(); got != tt.wantFallbacks {
				t.Errorf("Fallbacks() = %d, want %d", got, tt.wantFallbacks)
			}
			if tt.wantSecondary && len(secondary.Calls) == 0 {
				t.Error("expected secondary to be called")
			}
			if !tt.wantSecondary && len(secondary.Calls) != 0 {
				t.Errorf("secondary called %d times, want 0", len(secondary.Calls))
			}
		})
	}
}

func TestOrchestratorFallbackSuccess(t *testing.T) {
	primary := &MockClient{
		NameValue: "opendota",
		FetchWinLossFunc: func(ctx context.Context, id int64) (*models.WinLoss, error) {
			return nil, rateLimitErr("opendota")
		},
	}
	secondary := &MockClient{
		NameValue: "stratz",
		FetchWinLossFunc: func(ctx context.Context, id int64) (*models.WinLoss, error) {
			return &models.WinLoss{Wins: 7, Losses: 3}, nil
		},
	}

	o := NewOrchestrator(primary, secondary, zap.NewNop())
	wl, err := o.FetchWinLoss(context.Background(), 123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wl.Wins != 7 || wl.Losses != 3 {
		t.Errorf("unexpected result: %+v", wl)
	}
	if o.Fallbacks() != 1 {
		t.Errorf("Fallbacks() = %d, want 1", o.Fallbacks())
	}
}

func TestOrchestratorResetFallbacks(t *testing.T) {
	primary := &MockClient{
		FetchMatchFunc: func(ctx context.Context, id int64) (*models.MatchRecord, error) {
			return nil, rateLimitErr("opendota")
		},
	}
	o := NewOrchestrator(primary, &MockClient{}, zap.NewNop())

	for i := 0; i < 3; i++ {
		o.FetchMatch(context.Background(), int64(i))
	}
	if o.Fallbacks() != 3 {
		t.Fatalf("Fallbacks() = %d, want 3", o.Fallbacks())
	}

	o.ResetFallbacks()
	if o.Fallbacks() != 0 {
		t.Errorf("Fallbacks() after reset = %d, want 0", o.Fallbacks())
	}
}
