package repositories

import (
	"context"
	"errors"
	"fmt"

	"kolo/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentMethodRepository is the read-only lookup of configured
// mobile-money channels. Upsert exists only for seeding.
type PaymentMethodRepository interface {
	GetByCode(ctx context.Context, code string) (*models.PaymentMethod, error)
	ListEnabled(ctx context.Context) ([]models.PaymentMethod, error)
	Upsert(ctx context.Context, method *models.PaymentMethod) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) GetByCode(ctx context.Context, code string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&method).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListEnabled(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("name").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (r *paymentMethodRepository) Upsert(ctx context.Context, method *models.PaymentMethod) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "receive_account", "enabled", "updated_at"}),
		}).
		Create(method).Error
	if err != nil {
		return fmt.Errorf("failed to upsert payment method: %w", err)
	}
	return nil
}
