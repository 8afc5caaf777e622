package model

// Conventional priorities. Any text is accepted.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task represents a single item in a user's to-do list.
type Task struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index"`
	Title       string
	Description string
	Priority    string
	DueDate     *Date `gorm:"type:date"`
	Completed   bool  `gorm:"default:false"`
}
