package planner

import "testing"

func TestPlanCollection(t *testing.T) {
	const (
		minRent = 890880
		fee     = 5000
	)

	tests := []struct {
		name         string
		balance      uint64
		reserve      uint64
		wantSkip     bool
		wantWithdraw uint64
	}{
		{"exactly at threshold skips", 895880, 0, true, 0},
		{"one above threshold withdraws full balance minus fee", 895881, 0, false, 890881},
		{"zero balance skips", 0, 0, true, 0},
		{"reserve raises threshold", 905880, 10000, true, 0},
		{"reserve left behind", 905881, 10000, false, 890881},
		{"large balance", 2_000_000_000, 0, false, 1_999_995_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanCollection(tt.balance, tt.reserve, fee, minRent)
			if plan.Skip != tt.wantSkip {
				t.Fatalf("Skip = %v, want %v", plan.Skip, tt.wantSkip)
			}
			if plan.Withdraw != tt.wantWithdraw {
				t.Errorf("Withdraw = %d, want %d", plan.Withdraw, tt.wantWithdraw)
			}
		})
	}
}

// The rent minimum gates only the skip decision; it is never subtracted from
// the withdrawal. A change to that behavior must be deliberate.
func TestPlanCollectionRentAsymmetry(t *testing.T) {
	plan := PlanCollection(895881, 0, 5000, 890880)
	if plan.Skip {
		t.Fatal("expected withdrawal")
	}
	if plan.Withdraw != 895881-5000 {
		t.Errorf("Withdraw = %d, want %d (balance - fee, rent minimum not deducted)", plan.Withdraw, 895881-5000)
	}
}
