package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/gorm"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/post"
	"github.com/seung-2001/plant/models"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user id from context: %w", err)
	}

	p := &models.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	err = DB.Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return toModelPost(p), nil
}

func (s *PostPostgresStorage) GetPostById(id string) (*model.Post, error) {
	p, err := findPost(id)
	if err != nil {
		return nil, err
	}

	return toModelPost(p), nil
}

func (s *PostPostgresStorage) ListPosts(limit, offset int) ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	var results []*model.Post
	for i := range posts {
		results = append(results, toModelPost(&posts[i]))
	}

	return results, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	p, err := findPost(id)
	if err != nil {
		return nil, err
	}

	if p.UserID != userID {
		return nil, post.ErrForbidden
	}

	// частичное обновление - пустые поля не трогаем
	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
	}
	if content != "" {
		updates["content"] = content
	}

	err = DB.Model(p).Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	return toModelPost(p), nil
}

func (s *PostPostgresStorage) DeletePostById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	p, err := findPost(id)
	if err != nil {
		return err
	}

	if p.UserID != userID {
		return post.ErrForbidden
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	if err := tx.Where("post_id = ?", p.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comments: %w", err)
	}
	if err := tx.Where("post_id = ?", p.ID).Delete(&models.PostLike{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete likes: %w", err)
	}
	if err := tx.Delete(p).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete post: %w", err)
	}

	return tx.Commit().Error
}

func (s *PostPostgresStorage) LikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	p, err := findPost(id)
	if err != nil {
		return err
	}

	var existing models.PostLike
	err = DB.Where("post_id = ? AND user_id = ?", p.ID, userID).First(&existing).Error
	if err == nil {
		return post.ErrAlreadyLiked
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	like := &models.PostLike{PostID: p.ID, UserID: userID}
	if err := tx.Create(like).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not create like: %w", err)
	}

	// счетчик инкрементируется одним UPDATE, а не read-modify-write
	err = tx.Model(&models.Post{}).Where("id = ?", p.ID).
		Update("like_count", gorm.Expr("like_count + 1")).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not increment like count: %w", err)
	}

	return tx.Commit().Error
}

func (s *PostPostgresStorage) UnlikePost(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	p, err := findPost(id)
	if err != nil {
		return err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	res := tx.Where("post_id = ? AND user_id = ?", p.ID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return post.ErrNotLiked
	}

	err = tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", p.ID).
		Update("like_count", gorm.Expr("like_count - 1")).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not decrement like count: %w", err)
	}

	return tx.Commit().Error
}

// findPost возвращает пост по строковому ID или post.ErrNotFound
func findPost(id string) (*models.Post, error) {
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return nil, post.ErrNotFound
	}

	var p models.Post
	err = DB.First(&p, idInt).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	return &p, nil
}

func toModelPost(p *models.Post) *model.Post {
	return &model.Post{
		ID:           fmt.Sprint(p.ID),
		Title:        p.Title,
		Content:      p.Content,
		AuthorID:     fmt.Sprint(p.UserID),
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(model.TimeFormat),
	}
}
