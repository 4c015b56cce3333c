package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/post"
)

type MockCommentStorage struct {
	mu          sync.Mutex
	comments    map[string]*model.Comment
	nextID      int
	postStorage post.PostStorage
}

func NewMockCommentStorage(postStore post.PostStorage) *MockCommentStorage {
	return &MockCommentStorage{
		comments:    make(map[string]*model.Comment),
		nextID:      1,
		postStorage: postStore,
	}
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.postStorage.GetPostById(postID); err != nil {
		return nil, comment.ErrPostNotFound
	}

	id := strconv.Itoa(m.nextID)
	m.nextID++

	c := &model.Comment{
		ID:       id,
		PostID:   postID,
		Content:  content,
		AuthorID: fmt.Sprint(userID),
	}
	m.comments[id] = c
	return c, nil
}

func (m *MockCommentStorage) GetComments(postID string, limit, offset int) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.postStorage.GetPostById(postID); err != nil {
		return nil, comment.ErrPostNotFound
	}

	var results []*model.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			results = append(results, c)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		iID, _ := strconv.Atoi(results[i].ID)
		jID, _ := strconv.Atoi(results[j].ID)
		return iID < jID
	})

	if offset >= len(results) {
		return []*model.Comment{}, nil
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end], nil
}

func (m *MockCommentStorage) UpdateComment(ctx context.Context, postID, commentID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, comment.ErrNotFound
	}
	if c.AuthorID != fmt.Sprint(userID) {
		return nil, comment.ErrForbidden
	}

	c.Content = content
	return c, nil
}

func (m *MockCommentStorage) DeleteComment(ctx context.Context, postID, commentID string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[commentID]
	if !ok || c.PostID != postID {
		return comment.ErrNotFound
	}
	if c.AuthorID != fmt.Sprint(userID) {
		return comment.ErrForbidden
	}

	delete(m.comments, commentID)
	return nil
}
