package domain

// Earnings are always derived from the activity count, never persisted as an
// independent source of truth. Payment due is 100x the credit value.
const (
	CreditsPerActivity = 20
	PaymentPerActivity = 2000
)

// DeriveCredits returns the credits earned for count completed activities.
func DeriveCredits(count int) int {
	return count * CreditsPerActivity
}

// DerivePayment returns the payment due for count completed activities.
func DerivePayment(count int) int {
	return count * PaymentPerActivity
}
