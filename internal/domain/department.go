package domain

const (
	// AllDepartmentsID identifica o departamento sintético que agrega todos os demais
	AllDepartmentsID   = "all"
	AllDepartmentsName = "All"

	// UnassignedDepartmentID agrupa funcionários sem código de departamento
	UnassignedDepartmentID   = ""
	UnassignedDepartmentName = "Unassigned"
)

type Department struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Headcount             int    `json:"departmentHeadcount"`
	TotalTenureInMonths   int    `json:"-"`
	AverageTenureInMonths int    `json:"averageTenureInMonths"`
}
