package util

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for new hashes. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword returns nil only when password matches the stored hash.
func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
