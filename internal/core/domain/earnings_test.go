package domain

import "testing"

func TestDeriveEarnings(t *testing.T) {
	for _, count := range []int{0, 1, 5, 42, 1000} {
		credits := DeriveCredits(count)
		payment := DerivePayment(count)

		if credits != count*20 {
			t.Fatalf("DeriveCredits(%d) = %d, want %d", count, credits, count*20)
		}
		if payment != count*2000 {
			t.Fatalf("DerivePayment(%d) = %d, want %d", count, payment, count*2000)
		}
		if payment != 100*credits {
			t.Fatalf("payment %d is not 100x credits %d", payment, credits)
		}
	}
}
