package academyapi

import (
	"academy/internal/telegram"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	MessageTargetSync = "sync"
)

type WsResponseData struct {
	Target        string           `json:"target"` // Websocket message type: 'notify', 'alert', 'sync'
	User          UserData         `json:"user"`
	ReferralStats RefData          `json:"referral_stats"`
	Data          NotificationData `json:"data"`
	Config        AppConfig        `json:"app_config"`
}

type NotificationData struct {
	Id      int     `json:"id"`
	Style   string  `json:"style"`   // Target component style: 'success', 'warning', 'error', 'info'
	Type    string  `json:"type"`    // Notification type: 'custom', 'income_referral', 'income_level', 'income_spillover', 'income_revenue_share'
	Message string  `json:"message"` // Human readable payout description
	Amount  float64 `json:"amount"`  // Credited amount
	Level   uint    `json:"level"`   // Income level or milestone number
}

func EscapeMarkdownV2(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	for _, char := range specialChars {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

func SendTelegramMessage(msg string, chat string) error {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		err := errors.New("TELEGRAM_TOKEN is not set")
		return err
	}
	var chatId string
	switch chat {
	case "signup":
		chatId = os.Getenv("SIGNUP_CHAT_ID")
		if chatId == "" {
			err := errors.New("SIGNUP CHAT_ID is not set")
			return err
		}
	case "finance":
		chatId = os.Getenv("FINANCE_CHAT_ID")
		if chatId == "" {
			err := errors.New("FINANCE CHAT_ID is not set")
			return err
		}
	default:
		chatId = os.Getenv("DEFAULT_CHAT_ID")
		if chatId == "" {
			err := errors.New("DEFAULT CHAT_ID is not set")
			return err
		}
	}
	chatIdInt, err := strconv.Atoi(chatId)
	if err != nil {
		return err
	}
	id := int64(chatIdInt)
	bot, err := telegram.NewBot(token)
	if err != nil {
		return err
	}
	return bot.SendMarkdown(id, msg)
}

func WaitForAsynqTaskResult(ctx context.Context, i *asynq.Inspector, queue, taskID string) (*asynq.TaskInfo, error) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			taskInfo, err := i.GetTaskInfo(queue, taskID)
			if err != nil {
				return nil, err
			}
			if taskInfo.CompletedAt.IsZero() {
				continue
			}
			return taskInfo, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("context closed")
		}
	}
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// SyncUserStats serializes the full wallet + referral snapshot pushed
// over the websocket on connect and on every "sync" command.
func SyncUserStats(rdb *redis.Client, db *gorm.DB, user User) (jsonData []byte) {
	var wallet Wallet
	db.Where("user_id = ?", user.Id).First(&wallet)
	data := WsResponseData{
		Target: MessageTargetSync,
		Config: *CurrentAppConfig,
		User: UserData{
			ID:             user.Id,
			Balance:        wallet.Balance,
			TotalIncome:    wallet.TotalIncome,
			Email:          user.Email,
			Name:           user.Name,
			ReferralCode:   user.ReferralCode,
			RefCounter:     user.RefCounter,
			SpilloverCount: user.SpilloverCount,
			CurrentPackage: user.CurrentPackage,
		},
		ReferralStats: GetRefStats(db, user),
	}
	var err error
	jsonData, err = json.Marshal(data)
	if err != nil {
		return
	}
	// Keep the cached balance fresh so the dashboard widget can poll it
	// without hitting the db.
	balanceCache, _ := json.Marshal(wallet.Balance)
	rdb.Set(context.Background(), fmt.Sprintf(`balance_%v`, user.Id), balanceCache, 0*time.Second)
	return
}
