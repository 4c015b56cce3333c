package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"unique"`
	Password string
	Name     string
	Posts    []Post    `gorm:"foreignkey:UserID"`
	Comments []Comment `gorm:"foreignkey:UserID"`
}

type Post struct {
	gorm.Model
	Title        string
	Content      string
	UserID       uint
	LikeCount    int
	CommentCount int
	Comments     []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	gorm.Model
	Content string
	PostID  uint
	UserID  uint
}

// PostLike и Participation без gorm.Model: мягкое удаление оставляло бы
// строку в уникальном индексе и блокировало повторный like/join
type PostLike struct {
	ID        uint `gorm:"primary_key"`
	CreatedAt time.Time
	PostID    uint `gorm:"unique_index:idx_post_like"`
	UserID    uint `gorm:"unique_index:idx_post_like"`
}

// Статусы волонтерской активности
const (
	VolunteerStatusOpen      = "open"
	VolunteerStatusClosed    = "closed"
	VolunteerStatusCompleted = "completed"
)

type Volunteer struct {
	gorm.Model
	Title          string
	Description    string
	Location       string
	StartsAt       time.Time
	EndsAt         time.Time
	RequiredPeople int
	CurrentPeople  int
	Status         string
	OrganizerID    uint
	Participations []Participation `gorm:"foreignkey:VolunteerID"`
}

type Participation struct {
	ID          uint `gorm:"primary_key"`
	CreatedAt   time.Time
	VolunteerID uint `gorm:"unique_index:idx_volunteer_user"`
	UserID      uint `gorm:"unique_index:idx_volunteer_user"`
}
