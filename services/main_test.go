package services

import (
	"fmt"
	"testing"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB wires config.DB to a fresh in-memory SQLite database. The pool
// is capped at one connection so concurrent transactions serialize instead of
// tripping over SQLite table locks.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		sqlDB.Close()
	})
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, config.DB.Create(user).Error)
	return user
}

// seedWallet creates a wallet with a starting balance without going through
// the ledger, mirroring how fixtures set up accounts.
func seedWallet(t *testing.T, userID uint, balance int) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{UserID: userID, CoinBalance: balance}
	require.NoError(t, config.DB.Create(wallet).Error)
	return wallet
}

func walletBalance(t *testing.T, userID uint) *models.Wallet {
	t.Helper()
	var wallet models.Wallet
	require.NoError(t, config.DB.Where("user_id = ?", userID).First(&wallet).Error)
	return &wallet
}

func countTransactions(t *testing.T, walletID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&models.CoinTransaction{}).Where("wallet_id = ?", walletID).Count(&count).Error)
	return count
}

// assertLedgerInvariant checks that the balance equals the ledger sum:
// credits minus debits over all of the wallet's entries.
func assertLedgerInvariant(t *testing.T, walletID uint) {
	t.Helper()

	var wallet models.Wallet
	require.NoError(t, config.DB.First(&wallet, walletID).Error)

	var credits, debits int64
	require.NoError(t, config.DB.Model(&models.CoinTransaction{}).
		Where("wallet_id = ? AND type = ?", walletID, models.TransactionTypeCredit).
		Select("COALESCE(SUM(amount), 0)").Scan(&credits).Error)
	require.NoError(t, config.DB.Model(&models.CoinTransaction{}).
		Where("wallet_id = ? AND type = ?", walletID, models.TransactionTypeDebit).
		Select("COALESCE(SUM(amount), 0)").Scan(&debits).Error)

	require.Equal(t, credits-debits, int64(wallet.CoinBalance),
		"wallet %d balance does not match its ledger", walletID)
}
