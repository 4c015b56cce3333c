package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/post"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[string]*model.Comment
	nextID      int
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
}

func NewCommentMemoryStorage(postStore post.PostStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[string]*model.Comment),
		nextID:      1,
		postStorage: postStore,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	if len(content) == 0 || len(content) > 2000 {
		return nil, fmt.Errorf("content is too long or empty")
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.postStorage.GetPostById(postID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	id := strconv.Itoa(s.nextID)
	s.nextID++

	c := &model.Comment{
		ID:        id,
		PostID:    postID,
		Content:   content,
		AuthorID:  fmt.Sprint(userID),
		CreatedAt: time.Now().Format(model.TimeFormat),
	}

	s.comments[id] = c

	if counter, ok := s.postStorage.(*PostMemoryStorage); ok {
		counter.IncrementCommentCount(postID, 1)
	}

	return c, nil
}

func (s *CommentMemoryStorage) GetComments(postID string, limit, offset int) ([]*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.postStorage.GetPostById(postID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	var results []*model.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			results = append(results, c)
		}
	}

	// Сортируем по CreatedAt (по возрастанию) (и по ID в случае одинакового времени создания)
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt == results[j].CreatedAt {
			iID, _ := strconv.Atoi(results[i].ID)
			jID, _ := strconv.Atoi(results[j].ID)
			return iID < jID
		}
		return results[i].CreatedAt < results[j].CreatedAt
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

func (s *CommentMemoryStorage) UpdateComment(ctx context.Context, postID, commentID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findComment(postID, commentID)
	if err != nil {
		return nil, err
	}

	if c.AuthorID != fmt.Sprint(userID) {
		return nil, comment.ErrForbidden
	}

	c.Content = content
	return c, nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, postID, commentID string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findComment(postID, commentID)
	if err != nil {
		return err
	}

	if c.AuthorID != fmt.Sprint(userID) {
		return comment.ErrForbidden
	}

	delete(s.comments, commentID)

	if counter, ok := s.postStorage.(*PostMemoryStorage); ok {
		counter.IncrementCommentCount(postID, -1)
	}

	return nil
}

// findComment ищет комментарий и проверяет его принадлежность посту (вызывать под мьютексом)
func (s *CommentMemoryStorage) findComment(postID, commentID string) (*model.Comment, error) {
	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, comment.ErrPostNotFound
	}

	c, exists := s.comments[commentID]
	if !exists {
		return nil, comment.ErrNotFound
	}

	if c.PostID != postID {
		return nil, comment.ErrNotFound
	}

	return c, nil
}
