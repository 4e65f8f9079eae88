package repository

import (
	"context"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/notification"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository on the given session.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	row := Notification{
		ID:         n.ID,
		CustomerID: n.CustomerID,
		Kind:       n.Kind,
		Message:    n.Message,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *notificationRepository) List(
	ctx context.Context,
	unreadOnly bool,
	limit int,
) ([]*notification.Notification, error) {
	q := r.db.WithContext(ctx).Model(&Notification{})
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	var rows []Notification
	if err := WrapError(func() error {
		return q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	}); err != nil {
		return nil, err
	}
	out := make([]*notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, &notification.Notification{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			Kind:       row.Kind,
			Message:    row.Message,
			Read:       row.Read,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Notification{}).Where("read = ?", false).Count(&n).Error
	})
	return n, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).Where("id = ?", id).Update("read", true)
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Notification{}).Where("read = ?", false).Update("read", true).Error
	})
}
