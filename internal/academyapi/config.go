package academyapi

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type App struct {
	Rdb *redis.Client
	Db  *gorm.DB
	Aqc *asynq.Client
	Aqi *asynq.Inspector
}

type AppConfig struct {
	Settings AppSettings `json:"settings"`
	Currency string      `json:"currency"`
}

type AppSettings struct {
	Limits SettingLimit `json:"limits"`
}

type SettingLimit struct {
	WithdrawMin float64 `json:"withdraw_min"`
	WithdrawMax float64 `json:"withdraw_max"`
}

var (
	DefaultAppConfig *AppConfig
	CurrentAppConfig *AppConfig
)

func Init() *App {
	loadEnv()
	redisClient := setupRedis()
	db := setupDb()
	asynqClient := setupAsynqClient()
	asynqInspector := setupAsynqInspector()

	DefaultAppConfig = &AppConfig{
		Settings: AppSettings{
			Limits: SettingLimit{
				WithdrawMin: 10,
				WithdrawMax: 100000,
			},
		},
		Currency: "USD",
	}

	app := &App{
		Rdb: redisClient,
		Db:  db,
		Aqc: asynqClient,
		Aqi: asynqInspector,
	}
	isSet := false
	appConfigRaw, _ := app.Rdb.Get(context.Background(), "app_config").Result()
	if len(appConfigRaw) > 0 {
		err := json.Unmarshal([]byte(appConfigRaw), &CurrentAppConfig)
		if err != nil {
		} else {
			isSet = true
		}
	}
	if !isSet {
		CurrentAppConfig = DefaultAppConfig
		currentConfig, _ := json.Marshal(DefaultAppConfig)
		app.Rdb.Set(context.Background(), "app_config", currentConfig, 0)
	}
	seedPackages(db)
	return app
}

type AppWorker struct {
	Rdb *redis.Client
	Db  *gorm.DB
	Aqs *asynq.Server
}

func InitWorker() *AppWorker {
	loadEnv()
	redisClient := setupRedis()
	db := setupDb()
	asynqServer := setupAsynqServer()

	app := &AppWorker{
		Rdb: redisClient,
		Db:  db,
		Aqs: asynqServer,
	}
	appConfigRaw, _ := app.Rdb.Get(context.Background(), "app_config").Result()
	if len(appConfigRaw) > 0 {
		_ = json.Unmarshal([]byte(appConfigRaw), &CurrentAppConfig)
	}
	return app
}

func setupRedis() *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	return redisClient
}

func setupDb() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to the db")
	}
	err = Migrate(db)
	if err != nil {
		panic("failed to run migrations")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Wallet{},
		&WalletHistory{},
		&Package{},
		&PackageSettings{},
		&Purchase{},
		&TreeNode{},
		&Referral{},
	)
}

// seedPackages makes sure every active package tier has a commission
// settings row; amounts start at zero until an admin configures them.
func seedPackages(db *gorm.DB) {
	for _, name := range []string{"Starter", "Bronze", "Silver", "Gold", "Platinum"} {
		var pkg Package
		res := db.Where("name = ?", name).First(&pkg)
		if res.RowsAffected == 0 {
			db.Create(&Package{Name: name, Active: true})
		}
		var settings PackageSettings
		res = db.Where("package_name = ?", name).First(&settings)
		if res.RowsAffected == 0 {
			db.Create(&PackageSettings{PackageName: name})
		}
	}
}

func setupAsynqClient() *asynq.Client {
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return asynqClient
}

func setupAsynqInspector() *asynq.Inspector {
	asynqInspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return asynqInspector
}

func setupAsynqServer() *asynq.Server {
	concurency, err := strconv.Atoi(os.Getenv("INCOME_WORKER_SCALE"))
	if err != nil {
		concurency = 10
	}
	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		asynq.Config{
			Concurrency: concurency,
			Queues: map[string]int{
				"income": 1,
			},
		},
	)
	return asynqServer
}

func loadEnv() {
	env := os.Getenv("APP_ENV")
	if "" == env {
		env = "development"
	}

	godotenv.Load(".env." + env + ".local")

	if "test" != env {
		godotenv.Load(".env.local")
	}
	godotenv.Load(".env." + env)
	godotenv.Load()
}
