package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;not null" json:"full_name"`
	Email    string `gorm:"column:email;unique;not null" json:"email"`
	Password string `gorm:"column:password;not null" json:"-"`
	Role     string `gorm:"column:role;default:traveler" json:"role"`

	// Traveler profile used by the recommendation core. Fixed for the
	// lifetime of a loaded dataset; index position is assigned at load.
	Interests                datatypes.JSON `gorm:"column:interests;type:jsonb" json:"interests"`
	SustainabilityPreference float64        `gorm:"column:sustainability_preference;default:5" json:"sustainability_preference"` // 0-10
	BudgetLevel              string         `gorm:"column:budget_level" json:"budget_level"`
	TravelStyle              string         `gorm:"column:travel_style" json:"travel_style"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
