package repository

import (
	"context"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"
)

type PaymentRepository interface {
	Create(ctx context.Context, data *entity.Payment) error
	UpdateStatus(ctx context.Context, id string, status entity.PaymentStatus) error
}

type paymentRepository struct{}

func NewPaymentRepository() *paymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(ctx context.Context, data *entity.Payment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status entity.PaymentStatus) error {
	return xcontext.DB(ctx).Model(&entity.Payment{}).
		Where("id=?", id).
		Update("status", status).Error
}
