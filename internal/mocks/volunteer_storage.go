package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/volunteer"
	"github.com/seung-2001/plant/models"
)

type MockVolunteerStorage struct {
	mu           sync.Mutex
	volunteers   map[string]*model.Volunteer
	participants map[string]map[uint]bool
	nextID       int
}

func NewMockVolunteerStorage() *MockVolunteerStorage {
	return &MockVolunteerStorage{
		volunteers:   make(map[string]*model.Volunteer),
		participants: make(map[string]map[uint]bool),
		nextID:       1,
	}
}

func (m *MockVolunteerStorage) CreateVolunteer(ctx context.Context, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextID)
	m.nextID++

	v := &model.Volunteer{
		ID:             id,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		StartsAt:       input.StartsAt.Format(model.TimeFormat),
		EndsAt:         input.EndsAt.Format(model.TimeFormat),
		RequiredPeople: input.RequiredPeople,
		Status:         models.VolunteerStatusOpen,
		OrganizerID:    fmt.Sprint(userID),
	}
	m.volunteers[id] = v
	m.participants[id] = make(map[uint]bool)
	return v, nil
}

func (m *MockVolunteerStorage) GetVolunteerById(id string) (*model.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volunteers[id]
	if !ok {
		return nil, volunteer.ErrNotFound
	}
	return v, nil
}

func (m *MockVolunteerStorage) ListVolunteers(limit, offset int) ([]*model.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	volunteers := make([]*model.Volunteer, 0, len(m.volunteers))
	for _, v := range m.volunteers {
		volunteers = append(volunteers, v)
	}

	sort.Slice(volunteers, func(i, j int) bool {
		iID, _ := strconv.Atoi(volunteers[i].ID)
		jID, _ := strconv.Atoi(volunteers[j].ID)
		return iID > jID
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

func (m *MockVolunteerStorage) UpdateVolunteer(ctx context.Context, id string, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volunteers[id]
	if !ok {
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
	if input.RequiredPeople > 0 {
		v.RequiredPeople = input.RequiredPeople
	}
	return v, nil
}

func (m *MockVolunteerStorage) DeleteVolunteerById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volunteers[id]
	if !ok {
		return volunteer.ErrNotFound
	}
	if v.OrganizerID != fmt.Sprint(userID) {
		return volunteer.ErrForbidden
	}

	delete(m.volunteers, id)
	delete(m.participants, id)
	return nil
}

func (m *MockVolunteerStorage) JoinVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volunteers[id]
	if !ok {
		return volunteer.ErrNotFound
	}
	if m.participants[id][userID] {
		return volunteer.ErrAlreadyJoined
	}
	if v.Status != models.VolunteerStatusOpen {
		return volunteer.ErrClosed
	}
	if v.CurrentPeople >= v.RequiredPeople {
		return volunteer.ErrFull
	}

	m.participants[id][userID] = true
	v.CurrentPeople++
	return nil
}

func (m *MockVolunteerStorage) LeaveVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volunteers[id]
	if !ok {
		return volunteer.ErrNotFound
	}
	if !m.participants[id][userID] {
		return volunteer.ErrNotJoined
	}

	delete(m.participants[id], userID)
	v.CurrentPeople--
	return nil
}
