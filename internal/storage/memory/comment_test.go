package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seung-2001/plant/internal/comment"
)

func TestCommentMemoryStorage_CreateComment(t *testing.T) {
	t.Run("Success comment creation bumps the counter", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)

		c, err := storage.CreateComment(userContext(2), p.ID, "nice post")
		require.NoError(t, err)
		assert.Equal(t, p.ID, c.PostID)
		assert.Equal(t, "nice post", c.Content)
		assert.Equal(t, "2", c.AuthorID)

		p, err = posts.GetPostById(p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, p.CommentCount)
	})

	t.Run("Comment on unknown post returns ErrPostNotFound", func(t *testing.T) {
		storage := NewCommentMemoryStorage(NewPostMemoryStorage())

		_, err := storage.CreateComment(userContext(1), "999", "hello?")
		assert.ErrorIs(t, err, comment.ErrPostNotFound)
	})

	t.Run("Empty or oversized content is rejected", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)

		_, err = storage.CreateComment(userContext(1), p.ID, "")
		assert.Error(t, err)

		_, err = storage.CreateComment(userContext(1), p.ID, strings.Repeat("a", 2001))
		assert.Error(t, err)
	})
}

func TestCommentMemoryStorage_GetComments(t *testing.T) {
	t.Run("Comments come back oldest first", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)

		first, err := storage.CreateComment(userContext(1), p.ID, "first")
		require.NoError(t, err)
		second, err := storage.CreateComment(userContext(1), p.ID, "second")
		require.NoError(t, err)

		comments, err := storage.GetComments(p.ID, 20, 0)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, first.ID, comments[0].ID)
		assert.Equal(t, second.ID, comments[1].ID)
	})

	t.Run("Listing for unknown post returns ErrPostNotFound", func(t *testing.T) {
		storage := NewCommentMemoryStorage(NewPostMemoryStorage())

		_, err := storage.GetComments("999", 20, 0)
		assert.ErrorIs(t, err, comment.ErrPostNotFound)
	})
}

func TestCommentMemoryStorage_UpdateComment(t *testing.T) {
	t.Run("Author can edit", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)
		c, err := storage.CreateComment(userContext(1), p.ID, "typo here")
		require.NoError(t, err)

		updated, err := storage.UpdateComment(userContext(1), p.ID, c.ID, "fixed")
		require.NoError(t, err)
		assert.Equal(t, "fixed", updated.Content)
	})

	t.Run("Non-author gets ErrForbidden", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)
		c, err := storage.CreateComment(userContext(1), p.ID, "mine")
		require.NoError(t, err)

		_, err = storage.UpdateComment(userContext(2), p.ID, c.ID, "hacked")
		assert.ErrorIs(t, err, comment.ErrForbidden)
	})

	t.Run("Comment under a different post returns ErrNotFound", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		firstPost, err := posts.CreatePost(userContext(1), "first", "content")
		require.NoError(t, err)
		secondPost, err := posts.CreatePost(userContext(1), "second", "content")
		require.NoError(t, err)

		c, err := storage.CreateComment(userContext(1), firstPost.ID, "on the first post")
		require.NoError(t, err)

		_, err = storage.UpdateComment(userContext(1), secondPost.ID, c.ID, "misrouted")
		assert.ErrorIs(t, err, comment.ErrNotFound)
	})
}

func TestCommentMemoryStorage_DeleteComment(t *testing.T) {
	t.Run("Delete restores the counter", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)
		c, err := storage.CreateComment(userContext(1), p.ID, "temporary")
		require.NoError(t, err)

		require.NoError(t, storage.DeleteComment(userContext(1), p.ID, c.ID))

		p, err = posts.GetPostById(p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, p.CommentCount)
	})

	t.Run("Unknown comment returns ErrNotFound", func(t *testing.T) {
		posts := NewPostMemoryStorage()
		storage := NewCommentMemoryStorage(posts)

		p, err := posts.CreatePost(userContext(1), "title", "content")
		require.NoError(t, err)

		err = storage.DeleteComment(userContext(1), p.ID, "999")
		assert.ErrorIs(t, err, comment.ErrNotFound)
	})
}
