package user

import (
	"context"
	"errors"

	"github.com/seung-2001/plant/internal/model"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type UserStorage interface {
	RegisterUser(email, password, name string) (*model.User, error)
	LoginUser(email, password string) (string, *model.User, error) // JWT + пользователь
	GetUserByID(id uint) (*model.User, error)
	UpdatePassword(ctx context.Context, currentPassword, newPassword string) error
	DeleteUser(ctx context.Context) error
}
