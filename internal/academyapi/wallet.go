package academyapi

import "time"

const (
	IncomeTypeReferral     = "referral"
	IncomeTypeLevel        = "level"
	IncomeTypeSpillover    = "spillover"
	IncomeTypeRevenueShare = "revenue_share"
	IncomeTypeTask         = "task"
	IncomeTypeOther        = "other"
)

// Wallet keeps one denormalized balance per user. Created lazily on the
// first credit, mutated only by additive credit operations.
type Wallet struct {
	Id          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserId      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance     float64   `json:"wallet"`
	TotalIncome float64   `json:"total_income"`
}

// WalletHistory is the append-only credit log. Rows are never updated or
// deleted; the sum of a user's rows equals that user's TotalIncome.
type WalletHistory struct {
	Id          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UserId      uint      `json:"user_id" gorm:"index;not null"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	IncomeType  string    `json:"income_type" gorm:"index"` // referral, level, spillover, revenue_share, task, other
	LevelNumber uint      `json:"level_number"`             // 1..12 for level income, milestone level otherwise
	FromUserId  uint      `json:"from_user_id"`             // Downline user that triggered this credit
}
