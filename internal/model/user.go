package model

// User owns a list of tasks. Password holds a bcrypt hash.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Tasks    []Task `gorm:"constraint:OnDelete:CASCADE"`
}
