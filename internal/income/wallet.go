package income

import (
	"academy/internal/academyapi"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row lock on dialects that support it. SQLite
// (unit tests) has no FOR UPDATE; its writers are serialized anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreditWallet increments a user's balance and lifetime income and
// appends the matching history entry. Both halves run on the caller's
// transaction, so a credit is either fully recorded or not at all.
func CreditWallet(tx *gorm.DB, userId uint, amount float64, description string, incomeType string, levelNumber uint, fromUserId uint) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	var wallet academyapi.Wallet
	res := lockForUpdate(tx).Where("user_id = ?", userId).First(&wallet)
	if res.RowsAffected == 1 {
		wallet.Balance += amount
		wallet.TotalIncome += amount
		res = tx.Save(&wallet)
		if res.Error != nil {
			return res.Error
		}
	} else {
		wallet = academyapi.Wallet{
			UserId:      userId,
			Balance:     amount,
			TotalIncome: amount,
		}
		res = tx.Create(&wallet)
		if res.Error != nil {
			return res.Error
		}
	}
	entry := academyapi.WalletHistory{
		UserId:      userId,
		Amount:      amount,
		Description: description,
		IncomeType:  incomeType,
		LevelNumber: levelNumber,
		FromUserId:  fromUserId,
	}
	res = tx.Create(&entry)
	if res.Error != nil {
		return res.Error
	}
	return nil
}
