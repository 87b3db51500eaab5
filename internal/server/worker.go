package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"academy/internal/academyapi"
	"academy/internal/api"
	"academy/internal/app"
	"academy/internal/income"
	"academy/internal/worker"

	"github.com/hibiken/asynq"
)

func WorkerInit() { // Run Income Worker
	AppWorker = academyapi.InitWorker()
	Logger.Info("Income worker started")
	go func() {
		drainApprovedBacklog(AppWorker)
		app.DoEvery(10*time.Minute, func(time.Time) {
			drainApprovedBacklog(AppWorker)
		})
	}()
	mux := asynq.NewServeMux()
	mux.HandleFunc(income.TypeDistribute, handleDistributeTask)
	fmt.Println("[ Academy Income Worker is up ]")
	if err := AppWorker.Aqs.Run(mux); err != nil {
		log.Fatal("Failed to run Academy Income Worker: ", err)
	}
}

func handleDistributeTask(ctx context.Context, t *asynq.Task) error {
	var payload income.DistributePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("income: bad task payload: %v: %w", err, asynq.SkipRetry)
	}
	return distributePurchase(AppWorker, payload.PurchaseId)
}

type distributeJob struct {
	app        *academyapi.AppWorker
	purchaseId uint
}

func (j *distributeJob) Execute() {
	if err := distributePurchase(j.app, j.purchaseId); err != nil {
		log.Printf("[Worker] Backlog distribution of purchase %d failed: %v", j.purchaseId, err)
	}
}

// drainApprovedBacklog picks up purchases that were approved but whose
// queue task never made it to redis, e.g. after an enqueue failure or a
// redis flush. Runs at worker boot and every 10 minutes after.
func drainApprovedBacklog(appWorker *academyapi.AppWorker) {
	var purchases []academyapi.Purchase
	appWorker.Db.Where("status = ?", academyapi.PurchaseApproved).
		Order("created_at ASC").
		Find(&purchases)
	if len(purchases) == 0 {
		return
	}
	fmt.Println("[Worker]", app.CurrentMessageTime(), "Draining approved backlog:", len(purchases), "purchases")
	pool := worker.NewPool(GlobalConfig.WorkerSpeed, GlobalConfig.WorkerQueue)
	for _, purchase := range purchases {
		pool.Exec(&distributeJob{app: appWorker, purchaseId: purchase.Id})
	}
	pool.Close()
	pool.Wait()
}

func distributePurchase(app *academyapi.AppWorker, purchaseId uint) error {
	var purchase academyapi.Purchase
	res := app.Db.Where("id = ?", purchaseId).First(&purchase)
	if res.RowsAffected != 1 {
		return fmt.Errorf("income: purchase %d not found: %w", purchaseId, asynq.SkipRetry)
	}
	// Watermark to find the credits this run writes; every engine credit
	// carries the buyer as from_user_id.
	var lastHistoryId uint
	app.Db.Model(&academyapi.WalletHistory{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&lastHistoryId)

	report, err := income.DistributeAll(app.Db, app.Rdb, purchaseId)
	if err != nil {
		if errors.Is(err, income.ErrAlreadyDistributed) {
			log.Printf("[Worker] Purchase %d already distributed, skipping", purchaseId)
			return nil
		}
		return err
	}
	if !report.AllOk() {
		reportRaw, _ := json.Marshal(report)
		log.Printf("[Worker] Partial distribution of purchase %d: %s", purchaseId, reportRaw)
	}
	notifyPayouts(app, purchase.UserId, lastHistoryId)
	return nil
}

// notifyPayouts pushes one websocket notification per credit written by
// this distribution run and refreshes each beneficiary's cached stats.
func notifyPayouts(app *academyapi.AppWorker, buyerId uint, afterHistoryId uint) {
	var credits []academyapi.WalletHistory
	app.Db.Where(
		"from_user_id = ? AND id > ?",
		buyerId,
		afterHistoryId,
	).Find(&credits)
	for _, credit := range credits {
		var beneficiary academyapi.User
		res := app.Db.Where("id = ?", credit.UserId).First(&beneficiary)
		if res.RowsAffected != 1 {
			continue
		}
		academyapi.SyncUserStats(app.Rdb, app.Db, beneficiary)
		data := academyapi.WsResponseData{
			Target: api.MessageTargetNotification,
			Config: *academyapi.CurrentAppConfig,
			User: academyapi.UserData{
				ID:             beneficiary.Id,
				Email:          beneficiary.Email,
				Name:           beneficiary.Name,
				ReferralCode:   beneficiary.ReferralCode,
				RefCounter:     beneficiary.RefCounter,
				SpilloverCount: beneficiary.SpilloverCount,
				CurrentPackage: beneficiary.CurrentPackage,
			},
			Data: academyapi.NotificationData{
				Id:      int(credit.Id),
				Style:   api.MessageStyleSuccess,
				Type:    fmt.Sprintf("income_%s", credit.IncomeType),
				Message: credit.Description,
				Amount:  credit.Amount,
				Level:   credit.LevelNumber,
			},
		}
		jsonData, err := json.Marshal(data)
		if err != nil {
			continue
		}
		app.Rdb.Publish(context.Background(), fmt.Sprintf("notification_ch@%d", credit.UserId), jsonData)
	}
}
