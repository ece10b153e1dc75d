package postgres

import (
	"context"

	"tapcard/internal/domain/entity"
	domainerrors "tapcard/internal/domain/errors"
	"tapcard/internal/domain/repository"
	"tapcard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentMethodRepository implements the repository.PaymentMethodRepository interface.
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository is the constructor for paymentMethodRepository.
func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

func (repo *paymentMethodRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.PaymentMethod, error) {
	var methodMs []*model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&methodMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payment methods")
	}

	methods := make([]*entity.PaymentMethod, 0, len(methodMs))
	for _, methodM := range methodMs {
		methods = append(methods, toPaymentMethodDomain(methodM))
	}

	return methods, nil
}

func (repo *paymentMethodRepository) FindByCardAndID(ctx context.Context, cardID, id uuid.UUID) (*entity.PaymentMethod, error) {
	var methodM model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ? AND id = ?", cardID, id).
		First(&methodM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChildNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment method")
	}

	return toPaymentMethodDomain(&methodM), nil
}

func (repo *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	methodM := fromPaymentMethodDomain(method)

	if err := repo.db.WithContext(ctx).Create(methodM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment method")
	}

	method.CreatedAt = methodM.CreatedAt
	method.UpdatedAt = methodM.UpdatedAt

	return nil
}

func (repo *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	methodM := fromPaymentMethodDomain(method)

	result := repo.db.WithContext(ctx).
		Model(&model.PaymentMethodModel{}).
		Where("id = ? AND card_id = ?", method.ID, method.CardID).
		Omit("id", "card_id", "created_at").
		Select("*").
		Updates(methodM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment method")
	}
	if result.RowsAffected == 0 {
		return repository.ErrChildNotFound
	}

	return nil
}

func (repo *paymentMethodRepository) DeleteNotIn(ctx context.Context, cardID uuid.UUID, keep []uuid.UUID) error {
	query := repo.db.WithContext(ctx).Where("card_id = ?", cardID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}

	if err := query.Delete(&model.PaymentMethodModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to prune payment methods")
	}

	return nil
}
