package models

// DashboardView is the read-only summary composed from the account and
// file-record stores. It never feeds back into any mutation.
type DashboardView struct {
	AccountID   string        `json:"account_id"`
	DisplayName string        `json:"display_name"`
	Points      int64         `json:"points"`
	UsedBytes   int64         `json:"used_bytes"`
	QuotaBytes  int64         `json:"quota_bytes"`
	UsedPercent float64       `json:"used_percent"`
	Files       []*FileRecord `json:"files"`
}
