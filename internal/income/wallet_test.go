package income

import (
	"testing"

	"academy/internal/academyapi"

	"github.com/stretchr/testify/require"
)

func TestCreditWalletCreatesThenAccumulates(t *testing.T) {
	db := newTestDb(t)
	user := createUser(t, db, "u@academy.test", 0)

	require.NoError(t, CreditWallet(db, user.Id, 100, "first credit", academyapi.IncomeTypeTask, 0, 0))
	wallet := walletOf(t, db, user.Id)
	require.Equal(t, float64(100), wallet.Balance)
	require.Equal(t, float64(100), wallet.TotalIncome)

	require.NoError(t, CreditWallet(db, user.Id, 50.5, "second credit", academyapi.IncomeTypeOther, 0, 0))
	wallet = walletOf(t, db, user.Id)
	require.Equal(t, float64(150.5), wallet.Balance)
	require.Equal(t, float64(150.5), wallet.TotalIncome)
}

func TestCreditWalletRejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDb(t)
	user := createUser(t, db, "u@academy.test", 0)

	require.ErrorIs(t, CreditWallet(db, user.Id, 0, "zero", academyapi.IncomeTypeTask, 0, 0), ErrBadAmount)
	require.ErrorIs(t, CreditWallet(db, user.Id, -5, "negative", academyapi.IncomeTypeTask, 0, 0), ErrBadAmount)

	var count int64
	db.Model(&academyapi.WalletHistory{}).Count(&count)
	require.Zero(t, count)
}

func TestHistorySumMatchesTotalIncome(t *testing.T) {
	db := newTestDb(t)
	user := createUser(t, db, "u@academy.test", 0)

	amounts := []float64{12.5, 100, 37.25, 900}
	for _, amount := range amounts {
		require.NoError(t, CreditWallet(db, user.Id, amount, "credit", academyapi.IncomeTypeLevel, 1, 0))
	}

	var entries []academyapi.WalletHistory
	db.Where("user_id = ?", user.Id).Find(&entries)
	sum := float64(0)
	for _, entry := range entries {
		sum += entry.Amount
	}
	require.Equal(t, sum, walletOf(t, db, user.Id).TotalIncome)
}
