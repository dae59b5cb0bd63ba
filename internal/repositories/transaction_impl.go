package repositories

import (
	"context"
	"fmt"

	"btcwallet/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm backed TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetAllUserTransactions(ctx context.Context, apiKey string) ([]*models.Transaction, error) {
	db := r.db.WithContext(ctx)
	owned := db.Model(&models.Wallet{}).Select("address").Where("owner_key = ?", apiKey)

	var txs []*models.Transaction
	err := db.
		Where("source IN (?) OR destination IN (?)", owned, owned).
		Order("id").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) GetAllWalletTransactions(ctx context.Context, address string) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("source = ? OR destination = ?", address, address).
		Order("id").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) GetAllTransactions(ctx context.Context) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	if err := r.db.WithContext(ctx).Order("id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}
