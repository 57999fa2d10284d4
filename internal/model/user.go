package model

import (
	"slices"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// KnownRoles lists the roles the backend understands, in display order.
var KnownRoles = []string{RoleAdmin, RoleUser}

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Roles     []string   `json:"roles"`
	Enabled   bool       `json:"enabled"`
	Deleted   bool       `json:"deleted,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Session is what a successful login yields and what gets persisted.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	TotpCode    *int   `json:"totpCode,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

type Statistics struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	AdminCount    int64 `json:"adminCount"`
	UserCount     int64 `json:"userCount"`
	EnabledUsers  int64 `json:"enabledUsers"`
	DisabledUsers int64 `json:"disabledUsers"`
	DeletedUsers  int64 `json:"deletedUsers"`
}
