package mysql

import (
	"context"

	"asset-custody/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*user.User, error) {
	var out user.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}
