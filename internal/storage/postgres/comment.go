package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/gorm"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/models"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	// комментарий к несуществующему посту не создаем
	p, err := findPost(postID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	c := &models.Comment{
		PostID:  p.ID,
		UserID:  userID,
		Content: content,
	}

	if err := tx.Create(c).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	err = tx.Model(&models.Post{}).Where("id = ?", p.ID).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("could not increment comment count: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit: %w", err)
	}

	return toModelComment(c), nil
}

func (s *CommentPostgresStorage) GetComments(postID string, limit, offset int) ([]*model.Comment, error) {
	p, err := findPost(postID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	var comments []models.Comment
	err = DB.Where("post_id = ?", p.ID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	var results []*model.Comment
	for i := range comments {
		results = append(results, toModelComment(&comments[i]))
	}

	return results, nil
}

func (s *CommentPostgresStorage) UpdateComment(ctx context.Context, postID, commentID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	c, err := findComment(postID, commentID)
	if err != nil {
		return nil, err
	}

	if c.UserID != userID {
		return nil, comment.ErrForbidden
	}

	err = DB.Model(c).Update("content", content).Error
	if err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}

	return toModelComment(c), nil
}

func (s *CommentPostgresStorage) DeleteComment(ctx context.Context, postID, commentID string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	c, err := findComment(postID, commentID)
	if err != nil {
		return err
	}

	if c.UserID != userID {
		return comment.ErrForbidden
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	if err := tx.Delete(c).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comment: %w", err)
	}

	err = tx.Model(&models.Post{}).Where("id = ? AND comment_count > 0", c.PostID).
		Update("comment_count", gorm.Expr("comment_count - 1")).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not decrement comment count: %w", err)
	}

	return tx.Commit().Error
}

// findComment ищет комментарий по ID и проверяет, что он принадлежит указанному посту
func findComment(postID, commentID string) (*models.Comment, error) {
	p, err := findPost(postID)
	if err != nil {
		return nil, comment.ErrPostNotFound
	}

	idInt, err := strconv.Atoi(commentID)
	if err != nil {
		return nil, comment.ErrNotFound
	}

	var c models.Comment
	err = DB.First(&c, idInt).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, comment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", err)
	}

	if c.PostID != p.ID {
		return nil, comment.ErrNotFound
	}

	return &c, nil
}

func toModelComment(c *models.Comment) *model.Comment {
	return &model.Comment{
		ID:        fmt.Sprint(c.ID),
		PostID:    fmt.Sprint(c.PostID),
		Content:   c.Content,
		AuthorID:  fmt.Sprint(c.UserID),
		CreatedAt: c.CreatedAt.Format(model.TimeFormat),
	}
}
