package database

import (
	"context"
	"errors"
	"fmt"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/domain/repository"
	appErrors "dailyreminder/internal/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// UpsertDefault inserts the default time unless the recipient already has one.
func (r *scheduleRepository) UpsertDefault(ctx context.Context, id entity.RecipientID) error {
	s := &entity.Schedule{RecipientID: id, TimeOfDay: constant.DefaultTimeOfDay}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "recipient_id"}}, DoNothing: true}).
		Create(s).Error
	if err != nil {
		return fmt.Errorf("%w: upsert default for %s: %v", appErrors.ErrDatabaseOperation, id, err)
	}
	return nil
}

// Set inserts or replaces the recipient's time.
func (r *scheduleRepository) Set(ctx context.Context, id entity.RecipientID, t entity.TimeOfDay) error {
	s := &entity.Schedule{RecipientID: id, TimeOfDay: t}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"time_of_day", "updated_at"}),
		}).
		Create(s).Error
	if err != nil {
		return fmt.Errorf("%w: set %s to %s: %v", appErrors.ErrDatabaseOperation, id, t, err)
	}
	return nil
}

// Get returns the recipient's time, or found=false if none is stored.
func (r *scheduleRepository) Get(ctx context.Context, id entity.RecipientID) (entity.TimeOfDay, bool, error) {
	var s entity.Schedule
	if err := r.db.WithContext(ctx).Where("recipient_id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: get %s: %v", appErrors.ErrDatabaseOperation, id, err)
	}
	return s.TimeOfDay, true, nil
}

// Delete removes the recipient's schedule; a missing row is not an error.
func (r *scheduleRepository) Delete(ctx context.Context, id entity.RecipientID) error {
	if err := r.db.WithContext(ctx).Where("recipient_id = ?", id).Delete(&entity.Schedule{}).Error; err != nil {
		return fmt.Errorf("%w: delete %s: %v", appErrors.ErrDatabaseOperation, id, err)
	}
	return nil
}

// Update is a single conditional UPDATE, so the compare and the write cannot interleave with another writer.
func (r *scheduleRepository) Update(ctx context.Context, id entity.RecipientID, oldTime, newTime entity.TimeOfDay) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Schedule{}).
		Where("recipient_id = ? AND time_of_day = ?", id, oldTime).
		Update("time_of_day", newTime)
	if res.Error != nil {
		return false, fmt.Errorf("%w: update %s from %s to %s: %v", appErrors.ErrDatabaseOperation, id, oldTime, newTime, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListMatching returns every recipient registered for t.
func (r *scheduleRepository) ListMatching(ctx context.Context, t entity.TimeOfDay) ([]entity.RecipientID, error) {
	var ids []entity.RecipientID
	err := r.db.WithContext(ctx).
		Model(&entity.Schedule{}).
		Where("time_of_day = ?", t).
		Order("recipient_id asc").
		Pluck("recipient_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list recipients for %s: %v", appErrors.ErrDatabaseOperation, t, err)
	}
	return ids, nil
}

// Close closes the underlying connection pool.
func (r *scheduleRepository) Close() error {
	return Close(r.db)
}
