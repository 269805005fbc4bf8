package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// UsernameOrEmail matches the duplicate-identity check at registration:
// a user collides if either column is already taken.
type UsernameOrEmail struct {
	Username string
	Email    string
}

func (s UsernameOrEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ? OR email = ?", s.Username, s.Email)
}
