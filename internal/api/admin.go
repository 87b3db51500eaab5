package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"academy/internal/academyapi"
	"academy/internal/income"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type settingsParams struct {
	PackageName string `json:"package_name" binding:"required" validate:"required,max=50"`

	ReferralCommission float64 `json:"referral_commission" validate:"min=0"`

	Level1  float64 `json:"level_1_income" validate:"min=0"`
	Level2  float64 `json:"level_2_income" validate:"min=0"`
	Level3  float64 `json:"level_3_income" validate:"min=0"`
	Level4  float64 `json:"level_4_income" validate:"min=0"`
	Level5  float64 `json:"level_5_income" validate:"min=0"`
	Level6  float64 `json:"level_6_income" validate:"min=0"`
	Level7  float64 `json:"level_7_income" validate:"min=0"`
	Level8  float64 `json:"level_8_income" validate:"min=0"`
	Level9  float64 `json:"level_9_income" validate:"min=0"`
	Level10 float64 `json:"level_10_income" validate:"min=0"`
	Level11 float64 `json:"level_11_income" validate:"min=0"`
	Level12 float64 `json:"level_12_income" validate:"min=0"`

	Spillover1 float64 `json:"spillover_level_1" validate:"min=0"`
	Spillover2 float64 `json:"spillover_level_2" validate:"min=0"`
	Spillover3 float64 `json:"spillover_level_3" validate:"min=0"`
	Spillover4 float64 `json:"spillover_level_4" validate:"min=0"`

	RevShare1 float64 `json:"revenue_share_level_1" validate:"min=0"`
	RevShare2 float64 `json:"revenue_share_level_2" validate:"min=0"`
	RevShare3 float64 `json:"revenue_share_level_3" validate:"min=0"`
	RevShare4 float64 `json:"revenue_share_level_4" validate:"min=0"`
	RevShare5 float64 `json:"revenue_share_level_5" validate:"min=0"`
	RevShare6 float64 `json:"revenue_share_level_6" validate:"min=0"`
	RevShare7 float64 `json:"revenue_share_level_7" validate:"min=0"`
	RevShare8 float64 `json:"revenue_share_level_8" validate:"min=0"`
}

type creditParams struct {
	UserId      uint    `json:"user_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
	IncomeType  string  `json:"income_type" binding:"required" validate:"required,oneof=task other"`
}

// GetPendingPurchases lists Paid orders waiting for approval.
func GetPendingPurchases(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	var purchases []academyapi.Purchase
	app.Db.Where("status = ?", academyapi.PurchasePaid).
		Order("created_at ASC").
		Find(&purchases)
	c.JSON(http.StatusOK, purchases)
}

// ApprovePurchase moves a Paid order to Approved and enqueues the income
// distribution task. The status update is conditional so a double click
// on the approve button cannot queue the purchase twice. If the enqueue
// fails the order stays Approved and the worker's boot backlog scan
// picks it up.
func ApprovePurchase(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	purchaseId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase id"})
		return
	}
	res := app.Db.Model(&academyapi.Purchase{}).
		Where(
			"id = ? AND status = ?",
			purchaseId,
			academyapi.PurchasePaid,
		).Update("status", academyapi.PurchaseApproved)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("purchase is not awaiting approval").Error()})
		return
	}
	task, err := income.NewDistributeTask(uint(purchaseId))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	info, err := app.Aqc.Enqueue(task)
	if err != nil {
		fmt.Println("[Admin] Enqueue failed, backlog scan will retry. Purchase", purchaseId)
		c.JSON(http.StatusOK, gin.H{"status": academyapi.PurchaseApproved, "queued": false})
		return
	}
	fmt.Println("[Admin] Distribution queued:", info.ID, "Purchase", purchaseId)

	msg := fmt.Sprintf(
		`Purchase approved: %d
Queued task: %s`,
		purchaseId,
		academyapi.EscapeMarkdownV2(info.ID),
	)
	_ = academyapi.SendTelegramMessage(msg, "finance")

	// wait=1 blocks until the worker finishes so the dashboard can show
	// the outcome right away instead of polling.
	if c.DefaultQuery("wait", "") == "1" {
		waitCtx, cancel := context.WithTimeout(c, 15*time.Second)
		defer cancel()
		taskInfo, err := academyapi.WaitForAsynqTaskResult(waitCtx, app.Aqi, income.QueueIncome, info.ID)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"status":     academyapi.PurchaseApproved,
				"queued":     true,
				"task_state": taskInfo.State.String(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": academyapi.PurchaseApproved, "queued": true})
}

// RejectPurchase moves a Paid order to Rejected. Rejected orders are
// terminal and never reach the distribution engine.
func RejectPurchase(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	purchaseId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase id"})
		return
	}
	res := app.Db.Model(&academyapi.Purchase{}).
		Where(
			"id = ? AND status = ?",
			purchaseId,
			academyapi.PurchasePaid,
		).Update("status", academyapi.PurchaseRejected)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("purchase is not awaiting approval").Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": academyapi.PurchaseRejected})
}

// UpdatePackageSettings upserts the commission table for one package and
// drops the settings cache so the next distribution reads fresh amounts.
func UpdatePackageSettings(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	var settingsP settingsParams
	if err := c.ShouldBindJSON(&settingsP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var pkg academyapi.Package
	res := app.Db.Where("name = ?", settingsP.PackageName).First(&pkg)
	if res.RowsAffected != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("unknown package").Error()})
		return
	}
	settings := academyapi.PackageSettings{PackageName: settingsP.PackageName}
	app.Db.Where("package_name = ?", settingsP.PackageName).FirstOrInit(&settings)
	settings.ReferralCommission = settingsP.ReferralCommission
	settings.Level1 = settingsP.Level1
	settings.Level2 = settingsP.Level2
	settings.Level3 = settingsP.Level3
	settings.Level4 = settingsP.Level4
	settings.Level5 = settingsP.Level5
	settings.Level6 = settingsP.Level6
	settings.Level7 = settingsP.Level7
	settings.Level8 = settingsP.Level8
	settings.Level9 = settingsP.Level9
	settings.Level10 = settingsP.Level10
	settings.Level11 = settingsP.Level11
	settings.Level12 = settingsP.Level12
	settings.Spillover1 = settingsP.Spillover1
	settings.Spillover2 = settingsP.Spillover2
	settings.Spillover3 = settingsP.Spillover3
	settings.Spillover4 = settingsP.Spillover4
	settings.RevShare1 = settingsP.RevShare1
	settings.RevShare2 = settingsP.RevShare2
	settings.RevShare3 = settingsP.RevShare3
	settings.RevShare4 = settingsP.RevShare4
	settings.RevShare5 = settingsP.RevShare5
	settings.RevShare6 = settingsP.RevShare6
	settings.RevShare7 = settingsP.RevShare7
	settings.RevShare8 = settingsP.RevShare8
	res = app.Db.Save(&settings)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	income.InvalidateSettings(app.Rdb, settingsP.PackageName)
	c.JSON(http.StatusOK, settings)
}

// CreditIncome is the manual admin credit for task rewards and
// adjustments. Only the task and other income types are allowed here,
// the engine owns the rest.
func CreditIncome(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	adminId := c.MustGet("user_id").(uint)
	var creditP creditParams
	if err := c.ShouldBindJSON(&creditP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if creditP.IncomeType != academyapi.IncomeTypeTask && creditP.IncomeType != academyapi.IncomeTypeOther {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("income type must be task or other").Error()})
		return
	}
	var user academyapi.User
	res := app.Db.Where("id = ?", creditP.UserId).First(&user)
	if res.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": errors.New("user not found").Error()})
		return
	}
	amount := academyapi.RoundFloat(creditP.Amount, 2)
	err := app.Db.Transaction(func(tx *gorm.DB) error {
		return income.CreditWallet(
			tx,
			creditP.UserId,
			amount,
			creditP.Description,
			creditP.IncomeType,
			0,
			adminId,
		)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	academyapi.SyncUserStats(app.Rdb, app.Db, user)
	c.JSON(http.StatusOK, gin.H{"credited": amount})
}
