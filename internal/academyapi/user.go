package academyapi

import (
	"gorm.io/gorm"
	"time"
)

const (
	RoleMember = 0
	RoleAdmin  = 1
)

type User struct {
	Id             uint           `json:"id" gorm:"primarykey"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Name           string         `json:"name"`
	Role           uint           `json:"role"` // 0: Member, 1: Admin
	SponsorId      uint           `gorm:"index" json:"sponsor_id"` // Direct upline user ID, 0 = network root
	ReferralCode   string         `gorm:"index" json:"referral_code"`
	RefCounter     uint           `json:"ref_counter"`     // Direct signups through this user's code
	SpilloverCount uint           `json:"spillover_count"` // Approved downline purchases, drives spillover milestones
	CurrentPackage string         `json:"current_package"`
	Utm            string         `json:"utm"`
	Ip             string         `json:"ip"`
	Referer        string         `json:"referer"`
	Locale         string         `json:"locale"`
}

type UserData struct {
	ID             uint    `json:"id"`
	Balance        float64 `json:"wallet"`       // up-to-date withdrawable balance
	TotalIncome    float64 `json:"total_income"` // lifetime accumulated credits
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	ReferralCode   string  `json:"referral_code"`
	RefCounter     uint    `json:"ref_counter"`
	SpilloverCount uint    `json:"spillover_count"`
	CurrentPackage string  `json:"current_package"`
}
