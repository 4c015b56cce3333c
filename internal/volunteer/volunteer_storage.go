package volunteer

import (
	"context"
	"errors"

	"github.com/seung-2001/plant/internal/model"
)

var (
	ErrNotFound      = errors.New("volunteer not found")
	ErrForbidden     = errors.New("forbidden: not organizer")
	ErrFull          = errors.New("volunteer is full")
	ErrClosed        = errors.New("volunteer is not open")
	ErrAlreadyJoined = errors.New("already joined")
	ErrNotJoined     = errors.New("not joined")
)

type VolunteerStorage interface {
	CreateVolunteer(ctx context.Context, input model.VolunteerInput) (*model.Volunteer, error)
	GetVolunteerById(id string) (*model.Volunteer, error)
	ListVolunteers(limit, offset int) ([]*model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, id string, input model.VolunteerInput) (*model.Volunteer, error)
	DeleteVolunteerById(ctx context.Context, id string) error
	JoinVolunteer(ctx context.Context, id string) error
	LeaveVolunteer(ctx context.Context, id string) error
}
