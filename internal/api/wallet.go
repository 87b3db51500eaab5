package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"academy/internal/academyapi"

	"github.com/gin-gonic/gin"
)

type PaginatedHistory struct {
	Count    int                        `json:"count"`
	Next     string                     `json:"next"`
	Previous string                     `json:"previous"`
	Results  []academyapi.WalletHistory `json:"results"`
}

func GetWallet(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	userId := c.MustGet("user_id").(uint)
	var wallet academyapi.Wallet
	res := app.Db.Where("user_id = ?", userId).First(&wallet)
	if res.RowsAffected != 1 {
		// No credits yet: the wallet record is created lazily.
		wallet = academyapi.Wallet{UserId: userId}
	}
	c.JSON(http.StatusOK, wallet)
}

// GetWalletHistory godoc
// @Summary Get
// @Description paginated income history, newest first, optional income_type filter.
// @Tags wallet
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /wallet/history [get]
func GetWalletHistory(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if size < 1 || size > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("maximum size is 100").Error()})
		return
	}
	userId := c.MustGet("user_id").(uint)
	query := app.Db.Where("user_id = ?", userId)
	if incomeType := c.Query("income_type"); incomeType != "" {
		query = query.Where("income_type = ?", incomeType)
	}
	var entries []academyapi.WalletHistory
	query.Order("created_at DESC").Find(&entries)
	paginated := paginateHistory(entries, page, size)
	c.JSON(http.StatusOK, paginated)
}

func paginateHistory(entries []academyapi.WalletHistory, page int, size int) (paginated PaginatedHistory) {
	paginated.Results = []academyapi.WalletHistory{}
	feedLen := len(entries)
	i := (page - 1) * size
	if feedLen <= i {
		return paginated
	}
	if feedLen > page*size {
		paginated.Next = fmt.Sprintf("/wallet/history/?page=%d&size=%d", page+1, size)
	}
	if page > 1 {
		paginated.Previous = fmt.Sprintf("/wallet/history/?page=%d&size=%d", page-1, size)
	}
	if size > feedLen {
		size = feedLen
	}
	k := i + size
	j := k
	if feedLen < page*size {
		j = feedLen
	}
	paginated.Count = len(entries)
	if k > feedLen {
		k = feedLen
	}
	paginated.Results = entries[i:j:k]
	return paginated
}
