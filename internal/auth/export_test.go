package auth

import "time"

// SetNow pins the clock of a SignatureAuthorizer for deterministic tests.
func SetNow(a *SignatureAuthorizer, now func() time.Time) {
	a.now = now
}
