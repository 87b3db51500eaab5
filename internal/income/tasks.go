package income

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeDistribute = "income:distribute"
	QueueIncome    = "income"
)

type DistributePayload struct {
	PurchaseId uint `json:"purchase_id"`
}

// NewDistributeTask builds the queue task fired on purchase approval.
// The task id is derived from the purchase id so asynq rejects a second
// enqueue of the same purchase while the first is still pending.
func NewDistributeTask(purchaseId uint) (*asynq.Task, error) {
	payload, err := json.Marshal(DistributePayload{PurchaseId: purchaseId})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TypeDistribute,
		payload,
		asynq.Queue(QueueIncome),
		asynq.TaskID(fmt.Sprintf("%s:%d", TypeDistribute, purchaseId)),
		// Completed tasks stick around so the approval endpoint can report
		// the outcome.
		asynq.Retention(24*time.Hour),
	), nil
}
