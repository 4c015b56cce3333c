package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/user"
	"github.com/seung-2001/plant/models"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(email, password, name string) (*model.User, error) {
	// проверка - существует ли пользователь с таким email
	var existUser models.User
	err := DB.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, user.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
	}

	err = DB.Create(u).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toModelUser(u), nil
}

func (s *UserPostgresStorage) LoginUser(email, password string) (string, *model.User, error) {
	// единый ответ для "нет такого пользователя" и "неверный пароль",
	// чтобы по ошибке нельзя было перебирать email
	var u models.User
	err := DB.Where("email = ?", email).First(&u).Error
	if err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	tokenString, err := signToken(u.ID)
	if err != nil {
		return "", nil, err
	}

	return tokenString, toModelUser(&u), nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*model.User, error) {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	return toModelUser(&u), nil
}

func (s *UserPostgresStorage) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var u models.User
	err = DB.First(&u, userID).Error
	if gorm.IsRecordNotFoundError(err) {
		return user.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword))
	if err != nil {
		return user.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = DB.Model(&u).Update("password", string(hashedPassword)).Error
	if err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}

	return nil
}

func (s *UserPostgresStorage) DeleteUser(ctx context.Context) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var u models.User
	err = DB.First(&u, userID).Error
	if gorm.IsRecordNotFoundError(err) {
		return user.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}

	// удаляем пользователя вместе с его контентом
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	for _, del := range []error{
		tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error,
		tx.Where("user_id = ?", userID).Delete(&models.PostLike{}).Error,
		tx.Where("user_id = ?", userID).Delete(&models.Participation{}).Error,
		tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error,
		tx.Delete(&u).Error,
	} {
		if del != nil {
			tx.Rollback()
			return fmt.Errorf("could not delete user: %w", del)
		}
	}

	return tx.Commit().Error
}

// signToken подписывает JWT с user_id (срок жизни 72 часа)
func signToken(userID uint) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func toModelUser(u *models.User) *model.User {
	return &model.User{
		ID:        fmt.Sprint(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(model.TimeFormat),
	}
}
