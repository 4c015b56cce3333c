package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/user"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // email -> пользователь
	passwords map[string]string      // email -> bcrypt-хеш
	nextId    int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(email, password, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[email]
	if exists {
		return nil, user.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	u := &model.User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().Format(model.TimeFormat),
	}

	s.users[email] = u
	s.passwords[email] = string(hashedPassword)

	return u, nil
}

func (s *UserMemoryStorage) LoginUser(email, password string) (string, *model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// единый ответ для "нет такого пользователя" и "неверный пароль"
	u, exists := s.users[email]
	if !exists {
		return "", nil, user.ErrInvalidCredentials
	}

	hashedPassword, ok := s.passwords[email]
	if !ok {
		return "", nil, user.ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	userIDInt, err := strconv.Atoi(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid user id: %w", err)
	}

	tokenString, err := signToken(uint(userIDInt))
	if err != nil {
		return "", nil, err
	}

	return tokenString, u, nil
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idStr := strconv.Itoa(int(id))
	for _, u := range s.users {
		if u.ID == idStr {
			return u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (s *UserMemoryStorage) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, email, err := s.findByID(userID)
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(s.passwords[email]), []byte(currentPassword))
	if err != nil {
		return user.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.passwords[email] = string(hashedPassword)
	return nil
}

func (s *UserMemoryStorage) DeleteUser(ctx context.Context) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, email, err := s.findByID(userID)
	if err != nil {
		return err
	}

	delete(s.users, email)
	delete(s.passwords, email)
	return nil
}

// findByID ищет пользователя по числовому ID (вызывать под мьютексом)
func (s *UserMemoryStorage) findByID(id uint) (*model.User, string, error) {
	idStr := strconv.Itoa(int(id))
	for email, u := range s.users {
		if u.ID == idStr {
			return u, email, nil
		}
	}
	return nil, "", user.ErrNotFound
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
