package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"academy/internal/academyapi"
	"academy/internal/api/jwt"

	"github.com/dchest/uniuri"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signupParams struct {
	Email      string `json:"email" binding:"required" validate:"required,max=150"`
	Password   string `json:"password" binding:"required" validate:"required,min=8,max=72"`
	Name       string `json:"name" validate:"max=150"`
	InviteCode string `json:"invite_code" validate:"max=8"`
	Utm        string `json:"utm" validate:"max=500"`
	Ip         string `json:"ip" validate:"max=39"`
	Referer    string `json:"referer" validate:"max=150"`
	Locale     string `json:"locale" validate:"max=5"`
}

type signinParams struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new student. When a valid invite code is supplied
// the new user is linked under that sponsor and relation rows for the
// first three upline levels are recorded for the team dashboard.
func Signup(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	var signupP signupParams
	if err := c.ShouldBindJSON(&signupP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var double academyapi.User
	res := app.Db.Where("email = ?", signupP.Email).First(&double)
	if res.RowsAffected == 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("email already registered").Error()})
		return
	}
	sponsorId := uint(0)
	if signupP.InviteCode != "" {
		var sponsor academyapi.User
		res = app.Db.Where("referral_code = ?", signupP.InviteCode).First(&sponsor)
		if res.RowsAffected == 1 {
			sponsorId = sponsor.Id
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(signupP.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := academyapi.User{
		Email:     signupP.Email,
		Password:  string(hash),
		Name:      signupP.Name,
		SponsorId: sponsorId,
		Utm:       signupP.Utm,
		Ip:        signupP.Ip,
		Referer:   signupP.Referer,
		Locale:    signupP.Locale,
	}
	for {
		codeNew := uniuri.NewLenChars(8, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"))
		var codeDouble academyapi.User
		res = app.Db.Where(""+
			"referral_code = ?",
			codeNew,
		).First(&codeDouble)
		if res.RowsAffected == 1 {
			continue
		}
		user.ReferralCode = codeNew
		break
	}
	tx := app.Db.Begin()
	defer func() {
		tx.Rollback()
	}()
	res = tx.Create(&user)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	if sponsorId > 0 {
		res = tx.Model(&academyapi.User{}).
			Where("id = ?", sponsorId).
			Update("ref_counter", gorm.Expr("ref_counter + 1"))
		if res.Error != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
			return
		}
		CreateRefRelations(tx, user, sponsorId)
	}
	tx.Commit()

	cpUrl := os.Getenv("CP_URL")
	msg := fmt.Sprintf(
		`New signup [User: %d](%s/users/%d)
Sponsor: %d
Locale: %s`,
		user.Id,
		cpUrl,
		user.Id,
		sponsorId,
		academyapi.EscapeMarkdownV2(user.Locale),
	)
	_ = academyapi.SendTelegramMessage(msg, "signup")

	token, err := jwt.GenerateJWT(user.Id, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"is_signup": true,
		"jwt":       token,
	})
}

func Signin(c *gin.Context) {
	app := c.MustGet("app").(*academyapi.App)
	var signinP signinParams
	if err := c.ShouldBindJSON(&signinP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var user academyapi.User
	res := app.Db.Where("email = ?", signinP.Email).First(&user)
	if res.RowsAffected != 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": errors.New("invalid credentials").Error()})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(signinP.Password)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": errors.New("invalid credentials").Error()})
		return
	}
	token, err := jwt.GenerateJWT(user.Id, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"is_signup": false,
		"jwt":       token,
	})
}
