package models

import "time"

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

// HasLocation reports whether both coordinates are present. Entries owned
// by users without a full coordinate pair never contribute to the
// geographic aggregate.
func (user User) HasLocation() bool {
	return user.Latitude != nil && user.Longitude != nil
}
