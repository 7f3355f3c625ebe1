package domain

import "time"

// OTPLength is the number of digits in a verification code.
const OTPLength = 6

// OTPTTL is how long a verification code stays valid after issuance. The
// verification_codes collection carries a matching TTL index, but expiry is
// also checked explicitly at registration time because the store's purge
// cycle may lag.
const OTPTTL = 5 * time.Minute

// VerificationCode is a short-lived registration code bound to an email
// address. At most one code per email is meaningful: requesting a new code
// replaces the previous record and restarts the expiry window.
type VerificationCode struct {
	Email     string    `json:"email" bson:"email"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the code's validity window has passed at now.
func (v VerificationCode) Expired(now time.Time) bool {
	return now.Sub(v.CreatedAt) > OTPTTL
}
