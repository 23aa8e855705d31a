package domain

import "time"

type RefreshStatus string

const (
	RefreshStatusSuccess RefreshStatus = "SUCCESS"
	RefreshStatusFailed  RefreshStatus = "FAILED"
)

// RefreshRun registra uma execução de recarga do cache de funcionários
type RefreshRun struct {
	ID              string        `json:"id"`
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     time.Time     `json:"completed_at"`
	Status          RefreshStatus `json:"status"`
	EmployeeCount   int           `json:"employee_count"`
	DepartmentCount int           `json:"department_count"`
	Error           string        `json:"error,omitempty"`
}

// CacheStatus resume o estado atual do snapshot em memória
type CacheStatus struct {
	Loaded          bool          `json:"loaded"`
	Fresh           bool          `json:"fresh"`
	LoadedAt        *time.Time    `json:"loaded_at"`
	LastRefresh     *time.Time    `json:"last_refresh"`
	Age             string        `json:"age,omitempty"`
	TTL             string        `json:"ttl"`
	EmployeeCount   int           `json:"employee_count"`
	DepartmentCount int           `json:"department_count"`
	RecentRuns      []*RefreshRun `json:"recent_runs"`
}
