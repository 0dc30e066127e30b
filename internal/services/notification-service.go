package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type NotificationServiceInterface interface {
	ListMine(ctx context.Context, user *dto.AuthUser, filter repositories.NotificationFilter) ([]dto.NotificationDTO, uint64, error)
	CountUnread(ctx context.Context, user *dto.AuthUser) (uint64, error)
	MarkRead(ctx context.Context, user *dto.AuthUser, id uint64) error
	MarkAllRead(ctx context.Context, user *dto.AuthUser) error
	Delete(ctx context.Context, user *dto.AuthUser, id uint64) error
	DeleteAll(ctx context.Context, user *dto.AuthUser) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListMine(ctx context.Context, user *dto.AuthUser, filter repositories.NotificationFilter) ([]dto.NotificationDTO, uint64, error) {
	return s.notificationRepo.ListByUser(ctx, user.ID, filter)
}

func (s *NotificationService) CountUnread(ctx context.Context, user *dto.AuthUser) (uint64, error) {
	return s.notificationRepo.CountUnread(ctx, user.ID)
}

// owned проверяет принадлежность уведомления: чужие помечать и удалять нельзя.
func (s *NotificationService) owned(ctx context.Context, user *dto.AuthUser, id uint64) error {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != user.ID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, user *dto.AuthUser, id uint64) error {
	if err := s.owned(ctx, user, id); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, user *dto.AuthUser) error {
	return s.notificationRepo.MarkAllRead(ctx, user.ID)
}

func (s *NotificationService) Delete(ctx context.Context, user *dto.AuthUser, id uint64) error {
	if err := s.owned(ctx, user, id); err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, id)
}

func (s *NotificationService) DeleteAll(ctx context.Context, user *dto.AuthUser) error {
	return s.notificationRepo.DeleteAllForUser(ctx, user.ID)
}
