// Package model содержит структуры, которые отдаются наружу через JSON API.
// Хранилища возвращают их вместо gorm-моделей, чтобы хеш пароля и прочие
// внутренние поля никогда не попадали в ответ.
package model

import "time"

// TimeFormat - формат created_at в ответах API
const TimeFormat = "2006-01-02 15:04"

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Post struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	AuthorID     string `json:"author_id"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Content   string `json:"content"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Volunteer struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	RequiredPeople int    `json:"required_people"`
	CurrentPeople  int    `json:"current_people"`
	Status         string `json:"status"`
	OrganizerID    string `json:"organizer_id"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// VolunteerInput - поля, которые задает организатор при создании/изменении
type VolunteerInput struct {
	Title          string
	Description    string
	Location       string
	StartsAt       time.Time
	EndsAt         time.Time
	RequiredPeople int
}
