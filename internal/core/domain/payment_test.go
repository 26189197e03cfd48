package domain

import "testing"

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{StatusNone, StatusPending, true},
		{StatusPending, StatusApproved, true},
		{StatusApproved, StatusNone, true},
		{StatusNone, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusPending, StatusNone, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
