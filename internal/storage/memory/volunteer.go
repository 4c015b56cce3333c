package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/volunteer"
	"github.com/seung-2001/plant/models"
)

type VolunteerMemoryStorage struct {
	mu           sync.Mutex
	volunteers   map[string]*model.Volunteer
	participants map[string]map[uint]bool // volunteerID -> множество участников
	nextId       int
}

func NewVolunteerMemoryStorage() *VolunteerMemoryStorage {
	return &VolunteerMemoryStorage{
		volunteers:   make(map[string]*model.Volunteer),
		participants: make(map[string]map[uint]bool),
		nextId:       1,
	}
}

func (s *VolunteerMemoryStorage) CreateVolunteer(ctx context.Context, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	v := &model.Volunteer{
		ID:             id,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		StartsAt:       input.StartsAt.Format(model.TimeFormat),
		EndsAt:         input.EndsAt.Format(model.TimeFormat),
		RequiredPeople: input.RequiredPeople,
		CurrentPeople:  0,
		Status:         models.VolunteerStatusOpen,
		OrganizerID:    fmt.Sprint(userID),
		CreatedAt:      time.Now().Format(model.TimeFormat),
	}

	s.volunteers[id] = v
	s.participants[id] = make(map[uint]bool)
	return v, nil
}

func (s *VolunteerMemoryStorage) GetVolunteerById(id string) (*model.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.volunteers[id]
	if !exists {
		return nil, volunteer.ErrNotFound
	}

	return v, nil
}

func (s *VolunteerMemoryStorage) ListVolunteers(limit, offset int) ([]*model.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var volunteers []*model.Volunteer
	for _, v := range s.volunteers {
		volunteers = append(volunteers, v)
	}

	sort.Slice(volunteers, func(i, j int) bool {
		if volunteers[i].CreatedAt == volunteers[j].CreatedAt {
			iID, _ := strconv.Atoi(volunteers[i].ID)
			jID, _ := strconv.Atoi(volunteers[j].ID)
			return iID > jID
		}
		return volunteers[i].CreatedAt > volunteers[j].CreatedAt
	})

	if offset >= len(volunteers) {
		return []*model.Volunteer{}, nil
	}

	end := offset + limit
	if end > len(volunteers) {
		end = len(volunteers)
	}

	return volunteers[offset:end], nil
}

func (s *VolunteerMemoryStorage) UpdateVolunteer(ctx context.Context, id string, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.volunteers[id]
	if !exists {
		return nil, volunteer.ErrNotFound
	}

	if v.OrganizerID != fmt.Sprint(userID) {
		return nil, volunteer.ErrForbidden
	}

	if input.Title != "" {
		v.Title = input.Title
	}
	if input.Description != "" {
		v.Description = input.Description
	}
	if input.Location != "" {
		v.Location = input.Location
	}
	if !input.StartsAt.IsZero() {
		v.StartsAt = input.StartsAt.Format(model.TimeFormat)
	}
	if !input.EndsAt.IsZero() {
		v.EndsAt = input.EndsAt.Format(model.TimeFormat)
	}
	if input.RequiredPeople > 0 {
		v.RequiredPeople = input.RequiredPeople
	}

	return v, nil
}

func (s *VolunteerMemoryStorage) DeleteVolunteerById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.volunteers[id]
	if !exists {
		return volunteer.ErrNotFound
	}

	if v.OrganizerID != fmt.Sprint(userID) {
		return volunteer.ErrForbidden
	}

	delete(s.volunteers, id)
	delete(s.participants, id)
	return nil
}

func (s *VolunteerMemoryStorage) JoinVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.volunteers[id]
	if !exists {
		return volunteer.ErrNotFound
	}

	if s.participants[id][userID] {
		return volunteer.ErrAlreadyJoined
	}

	// проверка и инкремент под одним мьютексом - двойной join счетчик не ломает
	if v.Status != models.VolunteerStatusOpen {
		return volunteer.ErrClosed
	}
	if v.CurrentPeople >= v.RequiredPeople {
		return volunteer.ErrFull
	}

	s.participants[id][userID] = true
	v.CurrentPeople++
	return nil
}

func (s *VolunteerMemoryStorage) LeaveVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.volunteers[id]
	if !exists {
		return volunteer.ErrNotFound
	}

	if !s.participants[id][userID] {
		return volunteer.ErrNotJoined
	}

	delete(s.participants[id], userID)
	if v.CurrentPeople > 0 {
		v.CurrentPeople--
	}

	return nil
}
