package user

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var ErrNotFound = errors.New("user not found")

var roleRank = map[Role]int{RoleUser: 1, RoleManager: 2, RoleAdmin: 3}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants everything need grants.
func (r Role) AtLeast(need Role) bool {
	return roleRank[r] >= roleRank[need] && roleRank[r] > 0
}

type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Role      Role      `gorm:"column:role;size:16;not null;default:user" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
}
