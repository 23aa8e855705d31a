// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type Employee struct {
	GUID           string            `json:"guid"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email"`
	JobTitle       string            `json:"jobTitle,omitempty"`
	Status         string            `json:"status,omitempty"`
	StartDate      time.Time         `json:"startDate"`
	DepartureDate  *time.Time        `json:"departureDate"`
	ManagerEmail   string            `json:"managerEmail,omitempty"`
	DepartmentID   string            `json:"departmentId"`
	DepartmentName string            `json:"departmentName,omitempty"`
	Location       string            `json:"location,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`

	TenureInMonths int `json:"tenureInMonths"`
	TenureInYears  int `json:"tenureInYears"`
	ReportsToCount int `json:"reportsToCount"`
}

// IsPastEmployee indica se o funcionário já possui data de desligamento
func (e *Employee) IsPastEmployee() bool {
	return e.DepartureDate != nil
}

// EmployeeWithReports é a resposta de um funcionário com seus subordinados diretos ativos
type EmployeeWithReports struct {
	Employee
	DirectReports []Employee `json:"directReports,omitempty"`
}

// EmployeeFilters agrupa os filtros aceitos na listagem de funcionários
type EmployeeFilters struct {
	FirstName            string
	LastName             string
	Email                string
	DepartmentID         string
	RecentHires          bool
	IncludePastEmployees bool
}
