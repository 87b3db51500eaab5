package api

import (
	"net/http"

	"academy/internal/academyapi"

	"github.com/gin-gonic/gin"
)

func GetUser(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	userId := c.MustGet("user_id").(uint)

	var user academyapi.User
	res := app.Db.Where("id = ?", userId).First(&user)
	if res.RowsAffected == 1 {
		c.JSON(http.StatusOK, user)
	} else {
		c.JSON(http.StatusNotFound, nil)
	}
}
