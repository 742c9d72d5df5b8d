package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperadmin = "superadmin"
	RoleEditor     = "editor"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	CreatedByID  *uuid.UUID
}

type CreateUserCmd struct {
	Username    string
	Email       string
	Password    string
	Role        string
	IsActive    bool
	CreatedByID *uuid.UUID
}

type LogInCmd struct {
	Username string
	Password string
}

type LogInResult struct {
	User        User
	AccessToken string
}
