package income

import (
	"fmt"

	"academy/internal/academyapi"

	"gorm.io/gorm"
)

// Spillover milestones fire on the exact counter value only, so each
// milestone pays out once per sponsor. Business constants, not a
// formula.
var spilloverThresholds = []uint{5, 30, 155, 625}

// CheckSpilloverMilestones records one new downline purchase event for
// the direct sponsor and pays the milestone bonus when the new count
// lands exactly on a threshold. Runs on the caller's transaction; the
// sponsor row is locked so two concurrent purchases cannot collapse
// their increments into the same count.
func CheckSpilloverMilestones(tx *gorm.DB, sponsorUserId uint, packageName string, settings *academyapi.PackageSettings, fromUserId uint) error {
	var sponsor academyapi.User
	res := lockForUpdate(tx).Where("id = ?", sponsorUserId).First(&sponsor)
	if res.RowsAffected != 1 {
		// Sponsor vanished: nothing more to distribute.
		return nil
	}
	sponsor.SpilloverCount += 1
	res = tx.Save(&sponsor)
	if res.Error != nil {
		return res.Error
	}
	for i, threshold := range spilloverThresholds {
		if sponsor.SpilloverCount != threshold {
			continue
		}
		milestone := i + 1
		amount := settings.SpilloverAmount(milestone)
		if amount <= 0 {
			break
		}
		desc := fmt.Sprintf("Spillover milestone %d reached with %d downline purchases (%s)", milestone, threshold, packageName)
		if err := CreditWallet(tx, sponsor.Id, amount, desc, academyapi.IncomeTypeSpillover, uint(milestone), fromUserId); err != nil {
			return err
		}
		break
	}
	return nil
}
