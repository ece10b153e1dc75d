package postgres

import (
	"context"
	"fmt"

	"tapcard/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create repository
// instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
}

// NewCardRepository creates a card repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewCardRepository() repository.CardRepository {
	return NewCardRepository(f.tx)
}

// NewSocialLinkRepository creates a social link repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewSocialLinkRepository() repository.SocialLinkRepository {
	return NewSocialLinkRepository(f.tx)
}

// NewProductRepository creates a product repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

// NewProprietorRepository creates a proprietor repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewProprietorRepository() repository.ProprietorRepository {
	return NewProprietorRepository(f.tx)
}

// NewPaymentMethodRepository creates a payment method repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPaymentMethodRepository() repository.PaymentMethodRepository {
	return NewPaymentMethodRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// If a panic occurs within the callback the transaction is always rolled
	// back before the panic propagates.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
