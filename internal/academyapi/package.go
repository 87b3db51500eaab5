package academyapi

import "time"

const (
	PurchaseNew         = 0
	PurchasePaid        = 1
	PurchaseApproved    = 2
	PurchaseDistributed = 3
	PurchaseRejected    = 9
)

// Package is a course package tier offered on the platform.
type Package struct {
	Id        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Price     float64   `json:"price"`
	Active    bool      `json:"active" gorm:"default:true"`
}

// PackageSettings holds the commission amounts for one package tier:
// the flat referral commission, twelve level income amounts, four
// spillover milestone amounts and eight revenue share amounts.
// A zero amount means "no payout at this level" and is skipped.
type PackageSettings struct {
	Id          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PackageName string    `json:"package_name" gorm:"uniqueIndex;not null"`

	ReferralCommission float64 `json:"referral_commission"`

	Level1  float64 `json:"level_1_income"`
	Level2  float64 `json:"level_2_income"`
	Level3  float64 `json:"level_3_income"`
	Level4  float64 `json:"level_4_income"`
	Level5  float64 `json:"level_5_income"`
	Level6  float64 `json:"level_6_income"`
	Level7  float64 `json:"level_7_income"`
	Level8  float64 `json:"level_8_income"`
	Level9  float64 `json:"level_9_income"`
	Level10 float64 `json:"level_10_income"`
	Level11 float64 `json:"level_11_income"`
	Level12 float64 `json:"level_12_income"`

	Spillover1 float64 `json:"spillover_level_1"`
	Spillover2 float64 `json:"spillover_level_2"`
	Spillover3 float64 `json:"spillover_level_3"`
	Spillover4 float64 `json:"spillover_level_4"`

	RevShare1 float64 `json:"revenue_share_level_1"`
	RevShare2 float64 `json:"revenue_share_level_2"`
	RevShare3 float64 `json:"revenue_share_level_3"`
	RevShare4 float64 `json:"revenue_share_level_4"`
	RevShare5 float64 `json:"revenue_share_level_5"`
	RevShare6 float64 `json:"revenue_share_level_6"`
	RevShare7 float64 `json:"revenue_share_level_7"`
	RevShare8 float64 `json:"revenue_share_level_8"`
}

func (s *PackageSettings) LevelAmount(level int) float64 {
	switch level {
	case 1:
		return s.Level1
	case 2:
		return s.Level2
	case 3:
		return s.Level3
	case 4:
		return s.Level4
	case 5:
		return s.Level5
	case 6:
		return s.Level6
	case 7:
		return s.Level7
	case 8:
		return s.Level8
	case 9:
		return s.Level9
	case 10:
		return s.Level10
	case 11:
		return s.Level11
	case 12:
		return s.Level12
	}
	return 0
}

func (s *PackageSettings) SpilloverAmount(level int) float64 {
	switch level {
	case 1:
		return s.Spillover1
	case 2:
		return s.Spillover2
	case 3:
		return s.Spillover3
	case 4:
		return s.Spillover4
	}
	return 0
}

func (s *PackageSettings) RevShareAmount(level int) float64 {
	switch level {
	case 1:
		return s.RevShare1
	case 2:
		return s.RevShare2
	case 3:
		return s.RevShare3
	case 4:
		return s.RevShare4
	case 5:
		return s.RevShare5
	case 6:
		return s.RevShare6
	case 7:
		return s.RevShare7
	case 8:
		return s.RevShare8
	}
	return 0
}

// Purchase is a Structure designed to keep the data of package purchases
type Purchase struct {
	Id          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserId      uint      `json:"user_id" gorm:"index;not null"`
	PackageName string    `json:"package_name" gorm:"not null"`
	Amount      float64   `json:"amount"`
	PaymentRef  string    `json:"payment_ref"`
	Status      uint      `json:"status" gorm:"index"` // Status [0: New, 1: Paid, 2: Approved, 3: Distributed, 9: Rejected]
}
