package income

import (
	"fmt"
	"log"

	"academy/internal/academyapi"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Step is the outcome of one independent distribution step.
type Step struct {
	Ok  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Report carries per-step outcomes so the caller can tell a partial
// failure from a total one and retry only what failed.
type Report struct {
	PurchaseId   uint `json:"purchase_id"`
	Referral     Step `json:"referral"`
	Level        Step `json:"level"`
	Spillover    Step `json:"spillover"`
	RevenueShare Step `json:"revenue_share"`
}

func (r Report) AllOk() bool {
	return r.Referral.Ok && r.Level.Ok && r.Spillover.Ok && r.RevenueShare.Ok
}

// DistributeAll runs the full income distribution for one approved
// purchase: direct referral commission, level income up to 12 levels,
// the sponsor's spillover milestone, and revenue share tree placement.
//
// The purchase is claimed with a conditional status update before any
// credit, so a second call for the same purchase is a no-op. Missing
// commission settings abort the whole call. The four steps are
// best-effort and isolated: each runs in its own db transaction and a
// failure in one never stops the others.
func DistributeAll(db *gorm.DB, rdb *redis.Client, purchaseId uint) (Report, error) {
	report := Report{PurchaseId: purchaseId}

	var purchase academyapi.Purchase
	res := db.Where("id = ?", purchaseId).First(&purchase)
	if res.RowsAffected != 1 {
		return report, fmt.Errorf("income: purchase %d not found", purchaseId)
	}
	settings, err := GetSettings(db, rdb, purchase.PackageName)
	if err != nil {
		log.Printf("[income] no settings for package %q, aborting distribution of purchase %d", purchase.PackageName, purchaseId)
		return report, err
	}
	var buyer academyapi.User
	res = db.Where("id = ?", purchase.UserId).First(&buyer)
	if res.RowsAffected != 1 {
		return report, ErrUserNotFound
	}

	// Claim the purchase. Zero rows affected means a concurrent or
	// repeated run got here first; nothing may be credited twice.
	res = db.Model(&academyapi.Purchase{}).
		Where("id = ? AND status = ?", purchase.Id, academyapi.PurchaseApproved).
		Update("status", academyapi.PurchaseDistributed)
	if res.Error != nil {
		return report, res.Error
	}
	if res.RowsAffected == 0 {
		if purchase.Status == academyapi.PurchaseDistributed {
			return report, ErrAlreadyDistributed
		}
		return report, ErrPurchaseState
	}
	db.Model(&academyapi.User{}).Where("id = ?", buyer.Id).Update("current_package", purchase.PackageName)

	report.Referral = runStep("referral", func() error {
		return distributeReferral(db, buyer, purchase.PackageName, settings)
	})
	report.Level = runStep("level", func() error {
		return distributeLevels(db, buyer, purchase.PackageName, settings)
	})
	report.Spillover = runStep("spillover", func() error {
		return distributeSpillover(db, buyer, purchase.PackageName, settings)
	})
	report.RevenueShare = runStep("revenue_share", func() error {
		return distributeRevShare(db, buyer, purchase.PackageName, settings)
	})
	return report, nil
}

func runStep(name string, fn func() error) Step {
	if err := fn(); err != nil {
		log.Printf("[income] %s step failed: %v", name, err)
		return Step{Err: err.Error()}
	}
	return Step{Ok: true}
}

// distributeReferral pays the flat commission to the buyer's direct
// sponsor. No sponsor or a zero amount means nothing to distribute.
func distributeReferral(db *gorm.DB, buyer academyapi.User, packageName string, settings *academyapi.PackageSettings) error {
	if buyer.SponsorId == 0 || settings.ReferralCommission <= 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		desc := fmt.Sprintf("Direct referral commission for %s purchase by %s", packageName, buyer.Email)
		return CreditWallet(tx, buyer.SponsorId, settings.ReferralCommission, desc, academyapi.IncomeTypeReferral, 0, buyer.Id)
	})
}

// distributeLevels walks up to 12 levels of the sponsor chain and
// credits each ancestor its configured amount. Chains shorter than 12
// simply pay fewer levels; zero amounts are skipped.
func distributeLevels(db *gorm.DB, buyer academyapi.User, packageName string, settings *academyapi.PackageSettings) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return WalkUpline(tx, buyer.Id, MaxLevelDepth, func(level int, sponsor academyapi.User) error {
			amount := settings.LevelAmount(level)
			if amount <= 0 {
				return nil
			}
			desc := fmt.Sprintf("Level %d income for %s purchase by %s", level, packageName, buyer.Email)
			return CreditWallet(tx, sponsor.Id, amount, desc, academyapi.IncomeTypeLevel, uint(level), buyer.Id)
		})
	})
}

// distributeSpillover counts this purchase for the direct sponsor only;
// milestones are a direct-sponsor reward, unlike level income.
func distributeSpillover(db *gorm.DB, buyer academyapi.User, packageName string, settings *academyapi.PackageSettings) error {
	sponsorId := NextSponsor(db, buyer.Id)
	if sponsorId == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return CheckSpilloverMilestones(tx, sponsorId, packageName, settings, buyer.Id)
	})
}

func distributeRevShare(db *gorm.DB, buyer academyapi.User, packageName string, settings *academyapi.PackageSettings) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return ProcessRevenueShareTree(tx, buyer, packageName, settings)
	})
}
