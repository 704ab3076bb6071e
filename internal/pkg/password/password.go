// Package password wraps bcrypt hashing so callers never touch the raw
// primitives or persist anything but the salted digest.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt digest of plain.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored hash. Any error, including
// a malformed stored hash, yields false rather than surfacing to the caller.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
