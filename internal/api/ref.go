package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"academy/internal/academyapi"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaginatedRef struct {
	Count    int                  `json:"count"`
	Next     string               `json:"next"`
	Previous string               `json:"previous"`
	Results  []academyapi.Referral `json:"results"`
}

// RefRelationDepth is how many upline levels get a relation row at
// signup; the team dashboard only lists three.
const RefRelationDepth = 3

// CreateRefRelations Creates Referral relations for the new user's
// upline, one row per level up to RefRelationDepth.
func CreateRefRelations(tx *gorm.DB, user academyapi.User, upline uint) {
	current := upline
	for lvl := uint(1); lvl <= RefRelationDepth && current > 0; lvl++ {
		var referrer academyapi.User
		res := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"id = ?",
				current,
			).First(&referrer)
		if res.RowsAffected != 1 {
			break
		}
		relation := academyapi.Referral{
			UserId:   referrer.Id,
			AuthorId: user.Id,
			Lvl:      lvl,
		}
		tx.FirstOrInit(&relation)
		relation.AuthorName = user.Name
		relation.AuthorEmail = user.Email
		res = tx.Save(&relation)
		fmt.Println("[Ref] Relation created. Lvl", lvl)
		if res.Error != nil {
			break
		}
		current = referrer.SponsorId
	}
}

// GetReferrals godoc
// @Summary Get
// @Description paginated team listing for the authenticated user.
// @Tags users
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/ref [get]
func GetReferrals(c *gin.Context) {
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
	var referrals []academyapi.Referral
	app.Db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&referrals)
	paginatedRef := paginateRef(referrals, page, size)
	c.JSON(http.StatusOK, paginatedRef)
}

func GetRefStatsHandler(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	userId := c.MustGet("user_id").(uint)
	var user academyapi.User
	res := app.Db.Where("id = ?", userId).First(&user)
	if res.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, academyapi.GetRefStats(app.Db, user))
}

func paginateRef(referrals []academyapi.Referral, page int, size int) (paginatedRef PaginatedRef) {
	paginatedRef.Results = []academyapi.Referral{}
	feedLen := len(referrals)
	i := (page - 1) * size
	if feedLen <= i {
		return paginatedRef
	}
	if feedLen > page*size {
		paginatedRef.Next = fmt.Sprintf("/users/ref/?page=%d&size=%d", page+1, size)
	}
	if page > 1 {
		paginatedRef.Previous = fmt.Sprintf("/users/ref/?page=%d&size=%d", page-1, size)
	}
	if size > feedLen {
		size = feedLen
	}
	k := i + size
	j := k
	if feedLen < page*size {
		j = feedLen
	}
	paginatedRef.Count = len(referrals)
	if k > feedLen {
		k = feedLen
	}
	paginatedRef.Results = referrals[i:j:k]
	return paginatedRef
}
