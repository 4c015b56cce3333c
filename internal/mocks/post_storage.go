package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/post"
)

type MockPostStorage struct {
	mu     sync.Mutex
	posts  map[string]*model.Post
	likes  map[string]map[uint]bool
	nextID int
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{
		posts:  make(map[string]*model.Post),
		likes:  make(map[string]map[uint]bool),
		nextID: 1,
	}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextID)
	m.nextID++

	p := &model.Post{
		ID:       id,
		Title:    title,
		Content:  content,
		AuthorID: fmt.Sprint(userID),
	}
	m.posts[id] = p
	m.likes[id] = make(map[uint]bool)
	return p, nil
}

func (m *MockPostStorage) GetPostById(id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return p, nil
}

func (m *MockPostStorage) ListPosts(limit, offset int) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}

	// новые выше
	sort.Slice(posts, func(i, j int) bool {
		iID, _ := strconv.Atoi(posts[i].ID)
		jID, _ := strconv.Atoi(posts[j].ID)
		return iID > jID
	})

	if offset >= len(posts) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	if p.AuthorID != fmt.Sprint(userID) {
		return nil, post.ErrForbidden
	}

	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Content = content
	}
	return p, nil
}

func (m *MockPostStorage) DeletePostById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	if p.AuthorID != fmt.Sprint(userID) {
		return post.ErrForbidden
	}

	delete(m.posts, id)
	delete(m.likes, id)
	return nil
}

func (m *MockPostStorage) LikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	if m.likes[id][userID] {
		return post.ErrAlreadyLiked
	}

	m.likes[id][userID] = true
	p.LikeCount++
	return nil
}

func (m *MockPostStorage) UnlikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	if !m.likes[id][userID] {
		return post.ErrNotLiked
	}

	delete(m.likes[id], userID)
	p.LikeCount--
	return nil
}
