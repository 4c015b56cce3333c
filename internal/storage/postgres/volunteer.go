package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/gorm"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/volunteer"
	"github.com/seung-2001/plant/models"
)

type VolunteerPostgresStorage struct{}

func NewVolunteerPostgresStorage() *VolunteerPostgresStorage {
	return &VolunteerPostgresStorage{}
}

func (s *VolunteerPostgresStorage) CreateVolunteer(ctx context.Context, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	v := &models.Volunteer{
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		RequiredPeople: input.RequiredPeople,
		CurrentPeople:  0,
		Status:         models.VolunteerStatusOpen,
		OrganizerID:    userID,
	}

	err = DB.Create(v).Error
	if err != nil {
		return nil, fmt.Errorf("could not create volunteer: %w", err)
	}

	return toModelVolunteer(v), nil
}

func (s *VolunteerPostgresStorage) GetVolunteerById(id string) (*model.Volunteer, error) {
	v, err := findVolunteer(id)
	if err != nil {
		return nil, err
	}

	return toModelVolunteer(v), nil
}

func (s *VolunteerPostgresStorage) ListVolunteers(limit, offset int) ([]*model.Volunteer, error) {
	var volunteers []models.Volunteer
	err := DB.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&volunteers).Error
	if err != nil {
		return nil, fmt.Errorf("could not get volunteers: %w", err)
	}

	var results []*model.Volunteer
	for i := range volunteers {
		results = append(results, toModelVolunteer(&volunteers[i]))
	}

	return results, nil
}

func (s *VolunteerPostgresStorage) UpdateVolunteer(ctx context.Context, id string, input model.VolunteerInput) (*model.Volunteer, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	v, err := findVolunteer(id)
	if err != nil {
		return nil, err
	}

	if v.OrganizerID != userID {
		return nil, volunteer.ErrForbidden
	}

	// частичное обновление - нулевые поля не трогаем
	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if !input.StartsAt.IsZero() {
		updates["starts_at"] = input.StartsAt
	}
	if !input.EndsAt.IsZero() {
		updates["ends_at"] = input.EndsAt
	}
	if input.RequiredPeople > 0 {
		updates["required_people"] = input.RequiredPeople
	}

	err = DB.Model(v).Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("could not update volunteer: %w", err)
	}

	return toModelVolunteer(v), nil
}

func (s *VolunteerPostgresStorage) DeleteVolunteerById(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	v, err := findVolunteer(id)
	if err != nil {
		return err
	}

	if v.OrganizerID != userID {
		return volunteer.ErrForbidden
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	if err := tx.Where("volunteer_id = ?", v.ID).Delete(&models.Participation{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete participations: %w", err)
	}
	if err := tx.Delete(v).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete volunteer: %w", err)
	}

	return tx.Commit().Error
}

func (s *VolunteerPostgresStorage) JoinVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	v, err := findVolunteer(id)
	if err != nil {
		return err
	}

	var existing models.Participation
	err = DB.Where("volunteer_id = ? AND user_id = ?", v.ID, userID).First(&existing).Error
	if err == nil {
		return volunteer.ErrAlreadyJoined
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	p := &models.Participation{VolunteerID: v.ID, UserID: userID}
	if err := tx.Create(p).Error; err != nil {
		// уникальный индекс (volunteer_id, user_id) - страховка от гонки двух join
		tx.Rollback()
		return volunteer.ErrAlreadyJoined
	}

	// ровно один условный UPDATE: проверка вместимости и инкремент не разнесены,
	// поэтому при конкурентных join превысить required_people нельзя
	res := tx.Model(&models.Volunteer{}).
		Where("id = ? AND status = ? AND current_people < required_people", v.ID, models.VolunteerStatusOpen).
		Update("current_people", gorm.Expr("current_people + 1"))
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("could not increment participants: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		if v.Status != models.VolunteerStatusOpen {
			return volunteer.ErrClosed
		}
		return volunteer.ErrFull
	}

	return tx.Commit().Error
}

func (s *VolunteerPostgresStorage) LeaveVolunteer(ctx context.Context, id string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	v, err := findVolunteer(id)
	if err != nil {
		return err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	res := tx.Where("volunteer_id = ? AND user_id = ?", v.ID, userID).Delete(&models.Participation{})
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete participation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return volunteer.ErrNotJoined
	}

	err = tx.Model(&models.Volunteer{}).
		Where("id = ? AND current_people > 0", v.ID).
		Update("current_people", gorm.Expr("current_people - 1")).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not decrement participants: %w", err)
	}

	return tx.Commit().Error
}

// findVolunteer возвращает активность по строковому ID или volunteer.ErrNotFound
func findVolunteer(id string) (*models.Volunteer, error) {
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return nil, volunteer.ErrNotFound
	}

	var v models.Volunteer
	err = DB.First(&v, idInt).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, volunteer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get volunteer: %w", err)
	}

	return &v, nil
}

func toModelVolunteer(v *models.Volunteer) *model.Volunteer {
	return &model.Volunteer{
		ID:             fmt.Sprint(v.ID),
		Title:          v.Title,
		Description:    v.Description,
		Location:       v.Location,
		StartsAt:       v.StartsAt.Format(model.TimeFormat),
		EndsAt:         v.EndsAt.Format(model.TimeFormat),
		RequiredPeople: v.RequiredPeople,
		CurrentPeople:  v.CurrentPeople,
		Status:         v.Status,
		OrganizerID:    fmt.Sprint(v.OrganizerID),
		CreatedAt:      v.CreatedAt.Format(model.TimeFormat),
	}
}
