package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"academy/internal/academyapi"
	"academy/internal/payments"

	"github.com/gin-gonic/gin"
)

type purchaseParams struct {
	PackageName string `json:"package_name" binding:"required" validate:"required,max=50"`
	PaymentRef  string `json:"payment_ref" validate:"max=150"`
}

// CreatePurchase records a package order for the authenticated user.
// The order lands as Paid once the gateway confirms the reference and
// waits for admin approval before any income is distributed.
func CreatePurchase(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	userId := c.MustGet("user_id").(uint)
	var purchaseP purchaseParams
	if err := c.ShouldBindJSON(&purchaseP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var pkg academyapi.Package
	res := app.Db.Where("name = ? AND active = ?", purchaseP.PackageName, true).First(&pkg)
	if res.RowsAffected != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("unknown package").Error()})
		return
	}
	var pending academyapi.Purchase
	res = app.Db.Where(
		"user_id = ? AND package_name = ? AND status IN ?",
		userId,
		pkg.Name,
		[]uint{academyapi.PurchaseNew, academyapi.PurchasePaid, academyapi.PurchaseApproved},
	).First(&pending)
	if res.RowsAffected == 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("purchase already pending").Error()})
		return
	}
	purchase := academyapi.Purchase{
		UserId:      userId,
		PackageName: pkg.Name,
		Amount:      pkg.Price,
		PaymentRef:  purchaseP.PaymentRef,
		Status:      academyapi.PurchaseNew,
	}
	if err := payments.NewClient().VerifyPayment(purchaseP.PaymentRef, pkg.Price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purchase.Status = academyapi.PurchasePaid
	res = app.Db.Create(&purchase)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}

	cpUrl := os.Getenv("CP_URL")
	msg := fmt.Sprintf(
		`New purchase [%d](%s/purchases/%d)
User: %d
Package: %s
Amount: %s`,
		purchase.Id,
		cpUrl,
		purchase.Id,
		userId,
		academyapi.EscapeMarkdownV2(pkg.Name),
		academyapi.EscapeMarkdownV2(fmt.Sprintf("%v", pkg.Price)),
	)
	_ = academyapi.SendTelegramMessage(msg, "finance")

	c.JSON(http.StatusOK, purchase)
}

// GetPurchases lists the authenticated user's own orders, newest first.
func GetPurchases(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	userId := c.MustGet("user_id").(uint)
	var purchases []academyapi.Purchase
	app.Db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&purchases)
	c.JSON(http.StatusOK, purchases)
}
