package comment

import (
	"context"
	"errors"

	"github.com/seung-2001/plant/internal/model"
)

var (
	ErrNotFound     = errors.New("comment not found")
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden: not author")
)

type CommentStorage interface {
	CreateComment(ctx context.Context, postID, content string) (*model.Comment, error)
	GetComments(postID string, limit, offset int) ([]*model.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}
