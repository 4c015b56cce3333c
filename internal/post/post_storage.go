package post

import (
	"context"
	"errors"

	"github.com/seung-2001/plant/internal/model"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden: not author")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")
)

type PostStorage interface {
	CreatePost(ctx context.Context, title, content string) (*model.Post, error)
	GetPostById(id string) (*model.Post, error)
	ListPosts(limit, offset int) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error)
	DeletePostById(ctx context.Context, id string) error
	LikePost(ctx context.Context, id string) error
	UnlikePost(ctx context.Context, id string) error
}
