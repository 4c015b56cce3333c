package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/user"
)

// MockUserStorage - облегченное хранилище для тестов обработчиков
// (пароли хранятся открытым текстом, токен фиксированный)
type MockUserStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User
	passwords map[string]string
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
	}
}

func (m *MockUserStorage) RegisterUser(email, password, name string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[email]; exists {
		return nil, user.ErrEmailTaken
	}

	u := &model.User{
		ID:    strconv.Itoa(len(m.users) + 1),
		Email: email,
		Name:  name,
	}
	m.users[email] = u
	m.passwords[email] = password
	return u, nil
}

func (m *MockUserStorage) LoginUser(email, password string) (string, *model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[email]
	if !exists || m.passwords[email] != password {
		return "", nil, user.ErrInvalidCredentials
	}

	return "mock-token", u, nil
}

func (m *MockUserStorage) GetUserByID(id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idStr := fmt.Sprint(id)
	for _, u := range m.users {
		if u.ID == idStr {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *MockUserStorage) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idStr := fmt.Sprint(userID)
	for email, u := range m.users {
		if u.ID == idStr {
			if m.passwords[email] != currentPassword {
				return user.ErrWrongPassword
			}
			m.passwords[email] = newPassword
			return nil
		}
	}
	return user.ErrNotFound
}

func (m *MockUserStorage) DeleteUser(ctx context.Context) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idStr := fmt.Sprint(userID)
	for email, u := range m.users {
		if u.ID == idStr {
			delete(m.users, email)
			delete(m.passwords, email)
			return nil
		}
	}
	return user.ErrNotFound
}
