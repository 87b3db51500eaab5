package api

import (
	"net/http"

	"academy/internal/academyapi"

	"github.com/gin-gonic/gin"
)

// GetPackages is the public catalog of active package tiers.
func GetPackages(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	var packages []academyapi.Package
	app.Db.Where("active = ?", true).Order("price ASC").Find(&packages)
	c.JSON(http.StatusOK, packages)
}

func GetAppConfig(c *gin.Context) {
	c.JSON(http.StatusOK, academyapi.CurrentAppConfig)
}
