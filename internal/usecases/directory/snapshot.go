package directory

import (
	"math"
	"time"

	"github.com/vfg2006/people-directory-api/internal/domain"
)

const (
	msPerDay     = 24 * 60 * 60 * 1000
	daysPerMonth = 30.44
	daysPerYear  = 365.25
)

// Snapshot é uma fotografia imutável do relatório de funcionários. Depois de
// publicada nenhum campo é alterado; leitores podem compartilhá-la livremente.
type Snapshot struct {
	employees       []domain.Employee
	index           map[string]int
	departments     map[string]*domain.Department
	departmentOrder []string
	all             *domain.Department
	loadedAt        time.Time
}

// tenure calcula o tempo de casa entre start e end em meses e anos completos
func tenure(start, end time.Time) (months int, years int) {
	elapsed := float64(end.Sub(start).Milliseconds())
	if elapsed <= 0 {
		return 0, 0
	}

	months = int(math.Floor(elapsed / (msPerDay * daysPerMonth)))
	years = int(math.Floor(elapsed / (msPerDay * daysPerYear)))
	return months, years
}

func roundedAverage(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// buildSnapshot monta um snapshot novo a partir das linhas do relatório.
// Nada aqui toca o snapshot publicado.
func buildSnapshot(rows []domain.Employee, now time.Time, catalog map[string]string) *Snapshot {
	s := &Snapshot{
		employees:   make([]domain.Employee, 0, len(rows)),
		index:       make(map[string]int, len(rows)),
		departments: make(map[string]*domain.Department),
		loadedAt:    now,
	}

	// Funcionários e tempo de casa; guid repetido substitui a linha anterior na mesma posição
	for _, row := range rows {
		employee := row

		end := now
		if employee.DepartureDate != nil {
			end = *employee.DepartureDate
		}
		employee.TenureInMonths, employee.TenureInYears = tenure(employee.StartDate, end)
		employee.ReportsToCount = 0

		if position, exists := s.index[employee.GUID]; exists {
			s.employees[position] = employee
			continue
		}
		s.index[employee.GUID] = len(s.employees)
		s.employees = append(s.employees, employee)
	}

	// Subordinados: comparação exata (case-sensitive) do e-mail do gestor
	reportsTo := make(map[string]int)
	for _, employee := range s.employees {
		if employee.ManagerEmail != "" {
			reportsTo[employee.ManagerEmail]++
		}
	}
	for i := range s.employees {
		if s.employees[i].Email != "" {
			s.employees[i].ReportsToCount = reportsTo[s.employees[i].Email]
		}
	}

	// Departamentos: headcount e soma do tempo de casa
	for _, employee := range s.employees {
		department, exists := s.departments[employee.DepartmentID]
		if !exists {
			department = &domain.Department{ID: employee.DepartmentID}
			s.departments[employee.DepartmentID] = department
			s.departmentOrder = append(s.departmentOrder, employee.DepartmentID)
		}

		if department.Name == "" && employee.DepartmentName != "" {
			department.Name = employee.DepartmentName
		}
		department.Headcount++
		department.TotalTenureInMonths += employee.TenureInMonths
	}

	all := &domain.Department{
		ID:   domain.AllDepartmentsID,
		Name: domain.AllDepartmentsName,
	}

	for _, id := range s.departmentOrder {
		department := s.departments[id]
		department.Name = resolveDepartmentName(department, catalog)
		department.AverageTenureInMonths = roundedAverage(department.TotalTenureInMonths, department.Headcount)

		all.Headcount += department.Headcount
		all.TotalTenureInMonths += department.TotalTenureInMonths
	}

	all.AverageTenureInMonths = roundedAverage(all.TotalTenureInMonths, all.Headcount)
	s.all = all

	for i := range s.employees {
		if s.employees[i].DepartmentName == "" {
			s.employees[i].DepartmentName = s.departments[s.employees[i].DepartmentID].Name
		}
	}

	return s
}

func resolveDepartmentName(department *domain.Department, catalog map[string]string) string {
	if department.Name != "" {
		return department.Name
	}
	if name, ok := catalog[department.ID]; ok && name != "" {
		return name
	}
	if department.ID == domain.UnassignedDepartmentID {
		return domain.UnassignedDepartmentName
	}
	return department.ID
}

// departmentStats recalcula headcount e tempo de casa total de um departamento
// percorrendo os funcionários. O agregado sintético inclui todos.
func (s *Snapshot) departmentStats(department *domain.Department, includePastEmployees bool) (headcount int, totalTenure int) {
	synthetic := department == s.all
	for i := range s.employees {
		employee := &s.employees[i]
		if !includePastEmployees && employee.IsPastEmployee() {
			continue
		}
		if !synthetic && employee.DepartmentID != department.ID {
			continue
		}
		headcount++
		totalTenure += employee.TenureInMonths
	}
	return headcount, totalTenure
}

// EmployeeCount retorna o total de funcionários do snapshot
func (s *Snapshot) EmployeeCount() int {
	return len(s.employees)
}

// DepartmentCount retorna o total de departamentos reais, sem o agregado sintético
func (s *Snapshot) DepartmentCount() int {
	return len(s.departmentOrder)
}
