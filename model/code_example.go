package model

import "time"

// CodeExample is static reference content shown on the "codigo" section.
// Rows are seeded at deploy time and never mutated by users.
type CodeExample struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Title     string `gorm:"not null"`
	Body      string `gorm:"type:text;not null"`
	Language  string `gorm:"index"`
	Category  string `gorm:"index"`
}
