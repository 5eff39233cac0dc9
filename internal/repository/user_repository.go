package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, user model.User) error
	DeleteByID(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]model.User, error)
}
