package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM. The whole aggregate write (root row, media
// reference writes, all four child sync passes) runs inside one Execute call so
// a mid-operation failure leaves prior state unchanged.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations within the function
	// will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, ensuring all operations within it share one connection.
type RepositoryFactory interface {
	// NewCardRepository returns a CardRepository bound to the current transaction.
	NewCardRepository() CardRepository

	// NewSocialLinkRepository returns a SocialLinkRepository bound to the current transaction.
	NewSocialLinkRepository() SocialLinkRepository

	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewProprietorRepository returns a ProprietorRepository bound to the current transaction.
	NewProprietorRepository() ProprietorRepository

	// NewPaymentMethodRepository returns a PaymentMethodRepository bound to the current transaction.
	NewPaymentMethodRepository() PaymentMethodRepository
}
