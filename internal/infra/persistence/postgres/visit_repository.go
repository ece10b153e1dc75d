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

// visitRepository implements the repository.VisitRepository interface.
// Visit rows are append-only; there is no update or delete path.
type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository is the constructor for visitRepository.
func NewVisitRepository(db *gorm.DB) repository.VisitRepository {
	return &visitRepository{
		db: db,
	}
}

func (repo *visitRepository) CreateVisit(ctx context.Context, visit *entity.Visit) error {
	visitM := fromVisitDomain(visit)

	if err := repo.db.WithContext(ctx).Create(visitM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCardNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record visit")
	}

	return nil
}

func (repo *visitRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.VisitModel{}).
		Where("card_id = ?", cardID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count visits")
	}

	return count, nil
}

func (repo *visitRepository) CountsByType(ctx context.Context, cardID uuid.UUID) (map[string]int64, error) {
	type typeCount struct {
		Type  string
		Count int64
	}

	var rows []typeCount

	if err := repo.db.WithContext(ctx).
		Model(&model.VisitModel{}).
		Select("type, COUNT(*) AS count").
		Where("card_id = ?", cardID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to group visits by type")
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}

	return counts, nil
}

func (repo *visitRepository) FindRecentByCard(ctx context.Context, cardID uuid.UUID, limit int) ([]*entity.Visit, error) {
	var visitMs []*model.VisitModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("visited_at DESC").
		Limit(limit).
		Find(&visitMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent visits")
	}

	visits := make([]*entity.Visit, 0, len(visitMs))
	for _, visitM := range visitMs {
		visits = append(visits, toVisitDomain(visitM))
	}

	return visits, nil
}
