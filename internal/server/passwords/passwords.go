// Package passwords wraps bcrypt hashing and verification of account
// passwords. bcrypt embeds the salt in the hash and compares in constant
// time, so no extra salting or timing handling is needed here.
package passwords

import "golang.org/x/crypto/bcrypt"

// Hash generates a bcrypt hash for the given plaintext password.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches reports whether the plaintext password corresponds to hash.
func Matches(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
