package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor applied to new hashes. Stored hashes
// carry their own cost, so raising this only affects users created afterwards.
const PasswordCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash from the plain text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
