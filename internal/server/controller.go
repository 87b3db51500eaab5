package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/redis/go-redis/v9"

	"academy/internal/academyapi"
	"academy/internal/api"
	"academy/internal/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var App *academyapi.App
var AppWorker *academyapi.AppWorker

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}

func ApiInit() { // Run Api Server
	// @title Academy Backend
	// @version 0.1
	// @description Academy Backend: REST API & WebSocket Server
	// @host localhost:8000
	// @BasePath /
	// @schemes http https ws wss
	App = academyapi.Init()
	Logger.Info("Api server started")
	router := gin.Default()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	// This makes it so each ip can only make 100 requests per second
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       1,
		}),
		Rate:  time.Second,
		Limit: 100,
	})
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://0.0.0.0:3000",
			"http://localhost:3000",
		},
		AllowHeaders:  []string{"Origin", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		AllowMethods:  []string{"GET, POST, OPTIONS, PUT, DELETE"},
		MaxAge:        24 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Set("app", App)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", mw, wsHandler)
	router.GET("/ws/", mw, wsHandler)
	core := router.Group("/core/")
	{
		core.GET("/packages", mw, api.GetPackages)
		core.GET("/packages/", mw, api.GetPackages)
		core.GET("/config", mw, api.GetAppConfig)
		core.GET("/config/", mw, api.GetAppConfig)
	}
	auth := router.Group("/auth/")
	{
		auth.POST("/signup", mw, api.Signup)
		auth.POST("/signup/", mw, api.Signup)
		auth.POST("/signin", mw, api.Signin)
		auth.POST("/signin/", mw, api.Signin)
	}
	users := router.Group("/users/").Use(middleware.Auth())
	{
		users.GET("/me", mw, api.GetUser)
		users.GET("/me/", mw, api.GetUser)
		users.GET("/ref", mw, api.GetReferrals)
		users.GET("/ref/", mw, api.GetReferrals)
		users.GET("/ref/stats", mw, api.GetRefStatsHandler)
		users.GET("/ref/stats/", mw, api.GetRefStatsHandler)
	}
	wallet := router.Group("/wallet/").Use(middleware.Auth())
	{
		wallet.GET("/", mw, api.GetWallet)
		wallet.GET("/history", mw, api.GetWalletHistory)
		wallet.GET("/history/", mw, api.GetWalletHistory)
	}
	purchases := router.Group("/purchases/").Use(middleware.Auth())
	{
		purchases.POST("/", mw, api.CreatePurchase)
		purchases.GET("/", mw, api.GetPurchases)
	}
	admin := router.Group("/admin/").Use(middleware.Auth(), middleware.Admin())
	{
		admin.GET("/purchases", mw, api.GetPendingPurchases)
		admin.GET("/purchases/", mw, api.GetPendingPurchases)
		admin.POST("/purchases/:id/approve", mw, api.ApprovePurchase)
		admin.POST("/purchases/:id/approve/", mw, api.ApprovePurchase)
		admin.POST("/purchases/:id/reject", mw, api.RejectPurchase)
		admin.POST("/purchases/:id/reject/", mw, api.RejectPurchase)
		admin.POST("/settings", mw, api.UpdatePackageSettings)
		admin.POST("/settings/", mw, api.UpdatePackageSettings)
		admin.POST("/credit", mw, api.CreditIncome)
		admin.POST("/credit/", mw, api.CreditIncome)
	}
	port := GlobalConfig.Port
	if port == "" {
		port = ":8000"
	}
	fmt.Println("[ Academy Backend is up and listening to " + port + " ]")
	if GlobalConfig.Ssl {
		if err := router.RunTLS(port, GlobalConfig.SslCert, GlobalConfig.SslKey); err != nil {
			log.Fatal("Failed to run Academy Backend on "+port+": ", err)
		}
		return
	}
	if err := router.Run(port); err != nil {
		log.Fatal("Failed to run Academy Backend on "+port+": ", err)
	}
}
