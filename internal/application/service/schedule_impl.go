package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyreminder/internal/application/dto"
	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/domain/repository"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"go.uber.org/zap"
)

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	log          logger.Logger
}

// NewScheduleService creates a new instance of ScheduleService implementation.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, log logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

func validRecipient(id entity.RecipientID) error {
	if strings.TrimSpace(string(id)) == "" {
		return appErrors.ErrInvalidRecipient
	}
	return nil
}

// parseUserTime maps empty input to ErrMissingArgument and anything else through ParseTimeOfDay.
func parseUserTime(raw string) (entity.TimeOfDay, error) {
	if strings.TrimSpace(raw) == "" {
		return "", appErrors.ErrMissingArgument
	}
	return entity.ParseTimeOfDay(raw)
}

// Register stores the default time for a new recipient and returns whatever is stored now.
func (s *scheduleService) Register(ctx context.Context, id entity.RecipientID) (entity.TimeOfDay, error) {
	if err := validRecipient(id); err != nil {
		return "", err
	}
	if err := s.scheduleRepo.UpsertDefault(ctx, id); err != nil {
		s.log.Error("failed to register default schedule", err, zap.Stringer("recipient", id))
		return "", err
	}
	t, found, err := s.scheduleRepo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to read schedule after register", err, zap.Stringer("recipient", id))
		return "", err
	}
	if !found {
		// Deleted concurrently between the two statements.
		return "", fmt.Errorf("%w: schedule for %s vanished after register", appErrors.ErrDatabaseOperation, id)
	}
	s.log.Info("recipient registered", zap.Stringer("recipient", id), zap.Stringer("time", t))
	return t, nil
}

// SetTime validates the requested time and stores it.
func (s *scheduleService) SetTime(ctx context.Context, req dto.SetScheduleRequest) (entity.TimeOfDay, error) {
	if err := validRecipient(req.RecipientID); err != nil {
		return "", err
	}
	t, err := parseUserTime(req.Time)
	if err != nil {
		s.log.Debug("rejected schedule time", zap.Stringer("recipient", req.RecipientID), zap.String("input", req.Time))
		return "", err
	}
	if err := s.scheduleRepo.Set(ctx, req.RecipientID, t); err != nil {
		s.log.Error("failed to set schedule", err, zap.Stringer("recipient", req.RecipientID))
		return "", err
	}
	s.log.Info("schedule set", zap.Stringer("recipient", req.RecipientID), zap.Stringer("time", t))
	return t, nil
}

// GetSchedule returns the stored schedule for the recipient.
func (s *scheduleService) GetSchedule(ctx context.Context, id entity.RecipientID) (dto.ScheduleResponse, error) {
	if err := validRecipient(id); err != nil {
		return dto.ScheduleResponse{}, err
	}
	t, found, err := s.scheduleRepo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to get schedule", err, zap.Stringer("recipient", id))
		return dto.ScheduleResponse{}, err
	}
	return dto.ScheduleResponse{RecipientID: id, TimeOfDay: t, IsSet: found}, nil
}

// DeleteSchedule removes the recipient's schedule.
func (s *scheduleService) DeleteSchedule(ctx context.Context, id entity.RecipientID) error {
	if err := validRecipient(id); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete schedule", err, zap.Stringer("recipient", id))
		return err
	}
	s.log.Info("schedule deleted", zap.Stringer("recipient", id))
	return nil
}

// UpdateTime performs the conditional replace. A malformed old time can never
// match a stored value, so it reports Replaced=false without touching storage.
func (s *scheduleService) UpdateTime(ctx context.Context, req dto.UpdateScheduleRequest) (dto.UpdateScheduleResponse, error) {
	if err := validRecipient(req.RecipientID); err != nil {
		return dto.UpdateScheduleResponse{}, err
	}
	if strings.TrimSpace(req.OldTime) == "" || strings.TrimSpace(req.NewTime) == "" {
		return dto.UpdateScheduleResponse{}, appErrors.ErrMissingArgument
	}
	newTime, err := parseUserTime(req.NewTime)
	if err != nil {
		return dto.UpdateScheduleResponse{}, err
	}
	oldTime, err := entity.ParseTimeOfDay(req.OldTime)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidTimeFormat) {
			s.log.Debug("old time cannot match any schedule", zap.Stringer("recipient", req.RecipientID), zap.String("input", req.OldTime))
			return dto.UpdateScheduleResponse{OldTime: entity.TimeOfDay(strings.TrimSpace(req.OldTime)), NewTime: newTime}, nil
		}
		return dto.UpdateScheduleResponse{}, err
	}

	replaced, err := s.scheduleRepo.Update(ctx, req.RecipientID, oldTime, newTime)
	if err != nil {
		s.log.Error("failed to update schedule", err, zap.Stringer("recipient", req.RecipientID))
		return dto.UpdateScheduleResponse{}, err
	}
	s.log.Info("schedule update",
		zap.Stringer("recipient", req.RecipientID),
		zap.Stringer("old", oldTime),
		zap.Stringer("new", newTime),
		zap.Bool("replaced", replaced),
	)
	return dto.UpdateScheduleResponse{OldTime: oldTime, NewTime: newTime, Replaced: replaced}, nil
}
