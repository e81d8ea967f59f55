package models

import "time"

type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleRecruiter
}

// User is keyed by the identity provider's user id.
type User struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string    `gorm:"column:last_name;not null" json:"lastName"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Phone     *string   `gorm:"column:phone" json:"phone,omitempty"`
	Role      *Role     `gorm:"column:role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role != nil && *u.Role == r
}

// Profile is the composite view returned for the signed-in user.
type Profile struct {
	User      *User      `json:"user"`
	Seeker    *Seeker    `json:"seeker,omitempty"`
	Recruiter *Recruiter `json:"recruiter,omitempty"`
}
