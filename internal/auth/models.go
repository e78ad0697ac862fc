package auth

import "time"

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RolePromotor   = "promotor"
	RoleAdvisor    = "advisor"
)

// ValidRole reports whether role is one of the four platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RolePromotor, RoleAdvisor:
		return true
	}
	return false
}

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	TenantID       string    `gorm:"not null;uniqueIndex:uniq_tenant_username" json:"tenant_id"`
	Username       string    `gorm:"not null;uniqueIndex:uniq_tenant_username" json:"username"`
	Password       string    `json:"password" gorm:"-"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Role           string    `gorm:"default:'promotor'" json:"role"`
	Active         bool      `gorm:"default:true" json:"active"`
	ProfilePicURL  string    `json:"profile_pic_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Session        Session   `gorm:"foreignKey:UserID" json:"-"`
}

func (Session) TableName() string { return "field_auth.sessions" }
func (User) TableName() string    { return "field_auth.users" }
