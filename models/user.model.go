package models

import "gorm.io/gorm"

// Role constants for User.Role
const (
	RoleStudent = "student"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string `json:"phone"`
	Role      string `json:"role" gorm:"type:varchar(20);default:'student'"`
	Title     string `json:"title"` // display title for trainers, e.g. "Lead Instructor"
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
