package academyapi

import "time"

// Referral is a Structure designed to store referral relations
type Referral struct {
	CreatedAt   time.Time `json:"created_at"`
	UserId      uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`   // Upline user this relation belongs to
	AuthorId    uint      `json:"author_id" gorm:"primaryKey;autoIncrement:false"` // Referred user ID
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Lvl         uint      `json:"lvl"` // Distance from UserId to AuthorId in the sponsor chain
}

type RefData struct {
	TotalCounter    uint    `json:"total_counter"`
	LvlOneCounter   uint    `json:"lvl_one_counter"`
	LvlTwoCounter   uint    `json:"lvl_two_counter"`
	LvlThreeCounter uint    `json:"lvl_three_counter"`
	ReferralTotal   float64 `json:"referral_total"`
	LevelTotal      float64 `json:"level_total"`
	SpilloverTotal  float64 `json:"spillover_total"`
	RevShareTotal   float64 `json:"revenue_share_total"`
	IncomeTotal     float64 `json:"income_total"`
}
