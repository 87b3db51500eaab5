package income

import (
	"fmt"
	"testing"

	"academy/internal/academyapi"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, academyapi.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, sponsorId uint) academyapi.User {
	t.Helper()
	user := academyapi.User{
		Email:     email,
		Password:  "x",
		SponsorId: sponsorId,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSettings(t *testing.T, db *gorm.DB, settings academyapi.PackageSettings) academyapi.PackageSettings {
	t.Helper()
	require.NoError(t, db.Create(&settings).Error)
	return settings
}

func goldSettings() academyapi.PackageSettings {
	return academyapi.PackageSettings{
		PackageName:        "Gold",
		ReferralCommission: 500,
		Level1:             100,
		Level2:             40,
		Level3:             20,
		Level4:             10,
		Level5:             10,
		Level6:             10,
		Level7:             5,
		Level8:             5,
		Level9:             5,
		Level10:            5,
		Level11:            5,
		Level12:            5,
		Spillover1:         250,
		Spillover2:         1000,
		Spillover3:         5000,
		Spillover4:         25000,
		RevShare1:          50,
		RevShare2:          150,
		RevShare3:          500,
		RevShare4:          1500,
		RevShare5:          5000,
		RevShare6:          15000,
		RevShare7:          50000,
		RevShare8:          150000,
	}
}

func approvedPurchase(t *testing.T, db *gorm.DB, userId uint, packageName string) academyapi.Purchase {
	t.Helper()
	purchase := academyapi.Purchase{
		UserId:      userId,
		PackageName: packageName,
		Status:      academyapi.PurchaseApproved,
	}
	require.NoError(t, db.Create(&purchase).Error)
	return purchase
}

func walletOf(t *testing.T, db *gorm.DB, userId uint) academyapi.Wallet {
	t.Helper()
	var wallet academyapi.Wallet
	db.Where("user_id = ?", userId).First(&wallet)
	return wallet
}

func historyOf(t *testing.T, db *gorm.DB, userId uint, incomeType string) []academyapi.WalletHistory {
	t.Helper()
	var entries []academyapi.WalletHistory
	db.Where("user_id = ? AND income_type = ?", userId, incomeType).Order("id").Find(&entries)
	return entries
}
