package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/post"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[string]*model.Post
	likes  map[string]map[uint]bool // postID -> множество лайкнувших
	nextId int                      // Для хранения актуального ID (можно было использовать UUID)
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[string]*model.Post),
		likes:  make(map[string]map[uint]bool),
		nextId: 1,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	p := &model.Post{
		ID:        id,
		Title:     title,
		Content:   content,
		AuthorID:  fmt.Sprint(userID),
		CreatedAt: time.Now().Format(model.TimeFormat),
	}

	s.posts[id] = p
	s.likes[id] = make(map[uint]bool)
	return p, nil
}

func (s *PostMemoryStorage) GetPostById(id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, post.ErrNotFound
	}

	return p, nil
}

func (s *PostMemoryStorage) ListPosts(limit, offset int) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*model.Post
	for _, p := range s.posts {
		posts = append(posts, p)
	}

	// новые выше; при равном времени создания решает ID
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt == posts[j].CreatedAt {
			iID, _ := strconv.Atoi(posts[i].ID)
			jID, _ := strconv.Atoi(posts[j].ID)
			return iID > jID
		}
		return posts[i].CreatedAt > posts[j].CreatedAt
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

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
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

func (s *PostMemoryStorage) DeletePostById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return post.ErrNotFound
	}

	if p.AuthorID != fmt.Sprint(userID) {
		return post.ErrForbidden
	}

	delete(s.posts, id)
	delete(s.likes, id)
	return nil
}

func (s *PostMemoryStorage) LikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return post.ErrNotFound
	}

	if s.likes[id][userID] {
		return post.ErrAlreadyLiked
	}

	s.likes[id][userID] = true
	p.LikeCount++
	return nil
}

func (s *PostMemoryStorage) UnlikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return post.ErrNotFound
	}

	if !s.likes[id][userID] {
		return post.ErrNotLiked
	}

	delete(s.likes[id], userID)
	p.LikeCount--
	return nil
}

// IncrementCommentCount обновляет денормализованный счетчик комментариев.
// Вызывается хранилищем комментариев (внедрение зависимости (DI)).
func (s *PostMemoryStorage) IncrementCommentCount(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return
	}

	p.CommentCount += delta
	if p.CommentCount < 0 {
		p.CommentCount = 0
	}
}
