package academyapi

import (
	"gorm.io/gorm"
	_ "time/tzdata"
)

func GetRefStats(db *gorm.DB, user User) (refStats RefData) {
	var refRelations []Referral
	res := db.Where("user_id = ?", user.Id).Find(&refRelations)
	if res.RowsAffected > 0 {
		totalCounter, oneCounter, twoCounter, threeCounter := uint(0), uint(0), uint(0), uint(0)
		for _, relation := range refRelations {
			totalCounter++
			switch relation.Lvl {
			case 1:
				oneCounter++
			case 2:
				twoCounter++
			case 3:
				threeCounter++
			}
		}
		refStats.TotalCounter = totalCounter
		refStats.LvlOneCounter = oneCounter
		refStats.LvlTwoCounter = twoCounter
		refStats.LvlThreeCounter = threeCounter
	}
	var entries []WalletHistory
	res = db.Where("user_id = ?", user.Id).Find(&entries)
	if res.RowsAffected > 0 {
		for _, entry := range entries {
			refStats.IncomeTotal += entry.Amount
			switch entry.IncomeType {
			case IncomeTypeReferral:
				refStats.ReferralTotal += entry.Amount
			case IncomeTypeLevel:
				refStats.LevelTotal += entry.Amount
			case IncomeTypeSpillover:
				refStats.SpilloverTotal += entry.Amount
			case IncomeTypeRevenueShare:
				refStats.RevShareTotal += entry.Amount
			}
		}
	}
	return refStats
}
