package account

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type PasswordGenerator interface {
	GeneratePassword() RawPassword
}

type SessionTokenGenerator interface {
	GenerateToken() SessionToken
}
