// Package password wraps bcrypt for storing and checking account credentials.
package password

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash of a throwaway value. Login attempts for
// unknown emails compare against it so the response keeps the same timing
// shape whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hash transforms a cleartext password into its stored bcrypt form.
// The cleartext is never persisted or logged.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether candidate matches the stored hash.
func Verify(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// VerifyDummy burns one bcrypt comparison against a fixed hash. It always
// fails; callers use it to equalize work on the unknown-account path.
func VerifyDummy(candidate string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(candidate))
}
