package api

const (
	MessageTargetNotification = "notify"
	MessageTargetAlert        = "alert"

	MessageStyleSuccess = "success"
	MessageStyleWarning = "warning"
	MessageStyleError   = "error"
	MessageStyleInfo    = "info"

	MessageTypeCustom             = "custom"
	MessageTypeIncomeReferral     = "income_referral"
	MessageTypeIncomeLevel        = "income_level"
	MessageTypeIncomeSpillover    = "income_spillover"
	MessageTypeIncomeRevenueShare = "income_revenue_share"
)
