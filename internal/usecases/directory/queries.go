package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/pkg/apiErrors"
)

func (s *Service) GetEmployee(id string, includeDirectReports bool) (*domain.EmployeeWithReports, error) {
	current, err := s.current()
	if err != nil {
		return nil, err
	}

	position, exists := current.index[id]
	if !exists {
		return nil, NewDirectoryError(ErrNotFound, apiErrors.ErrEmployeeNotFound, fmt.Sprintf("employee %s", id))
	}

	response := &domain.EmployeeWithReports{Employee: current.employees[position]}
	if includeDirectReports {
		response.DirectReports = current.activeDirectReports(response.Email)
	}

	return response, nil
}

func (s *Snapshot) activeDirectReports(managerEmail string) []domain.Employee {
	reports := make([]domain.Employee, 0)
	if managerEmail == "" {
		return reports
	}

	for _, employee := range s.employees {
		if employee.ManagerEmail == managerEmail && !employee.IsPastEmployee() {
			reports = append(reports, employee)
		}
	}
	return reports
}

// GetEmployees aplica os filtros na ordem de inserção do snapshot
func (s *Service) GetEmployees(filters domain.EmployeeFilters) ([]domain.Employee, error) {
	current, err := s.current()
	if err != nil {
		return nil, err
	}

	now := s.now()
	recentSince := now.Add(-s.recentHireWindow)

	firstName := strings.ToLower(filters.FirstName)
	lastName := strings.ToLower(filters.LastName)
	email := strings.ToLower(filters.Email)

	employees := make([]domain.Employee, 0)
	for _, employee := range current.employees {
		if !filters.IncludePastEmployees && employee.IsPastEmployee() {
			continue
		}
		if firstName != "" && !strings.Contains(strings.ToLower(employee.FirstName), firstName) {
			continue
		}
		if lastName != "" && !strings.Contains(strings.ToLower(employee.LastName), lastName) {
			continue
		}
		if email != "" && !strings.HasPrefix(strings.ToLower(employee.Email), email) {
			continue
		}
		if filters.DepartmentID != "" && employee.DepartmentID != filters.DepartmentID {
			continue
		}
		if filters.RecentHires && (employee.StartDate.Before(recentSince) || employee.StartDate.After(now)) {
			continue
		}

		employees = append(employees, employee)
	}

	return employees, nil
}

// GetDepartment busca pelo código exato e recalcula headcount e tempo médio de casa.
// Um departamento real com código "all" tem precedência sobre o agregado.
func (s *Service) GetDepartment(id string, includePastEmployees bool) (*domain.Department, error) {
	current, err := s.current()
	if err != nil {
		return nil, err
	}

	if department, exists := current.departments[id]; exists {
		return current.recompute(department, includePastEmployees), nil
	}
	if id == domain.AllDepartmentsID {
		return current.recompute(current.all, includePastEmployees), nil
	}

	return nil, NewDirectoryError(ErrNotFound, apiErrors.ErrDepartmentNotFound, fmt.Sprintf("department %s", id))
}

// GetDepartmentByName aceita o código exato ou o nome (sem diferenciar
// maiúsculas). Departamentos reais são consultados antes do agregado.
func (s *Service) GetDepartmentByName(nameOrID string, includePastEmployees bool) (*domain.Department, error) {
	current, err := s.current()
	if err != nil {
		return nil, err
	}

	if department, exists := current.departments[nameOrID]; exists {
		return current.recompute(department, includePastEmployees), nil
	}

	for _, id := range current.departmentOrder {
		department := current.departments[id]
		if strings.EqualFold(department.Name, nameOrID) {
			return current.recompute(department, includePastEmployees), nil
		}
	}

	if nameOrID == current.all.ID || strings.EqualFold(current.all.Name, nameOrID) {
		return current.recompute(current.all, includePastEmployees), nil
	}

	return nil, NewDirectoryError(ErrNotFound, apiErrors.ErrDepartmentNotFound, fmt.Sprintf("department %s", nameOrID))
}

// GetDepartments lista os departamentos reais ordenados por nome. Sem
// funcionários desligados, departamentos com headcount zero são omitidos.
func (s *Service) GetDepartments(includePastEmployees bool) ([]domain.Department, error) {
	current, err := s.current()
	if err != nil {
		return nil, err
	}

	departments := make([]domain.Department, 0, len(current.departmentOrder))
	for _, id := range current.departmentOrder {
		department := current.recompute(current.departments[id], includePastEmployees)
		if department.Headcount == 0 && !includePastEmployees {
			continue
		}
		departments = append(departments, *department)
	}

	if len(departments) == 0 {
		return nil, NewDirectoryError(ErrEmptyResult, apiErrors.ErrEmptyResult, "no departments with employees")
	}

	sort.SliceStable(departments, func(i, j int) bool {
		left, right := strings.ToLower(departments[i].Name), strings.ToLower(departments[j].Name)
		if left != right {
			return left < right
		}
		return departments[i].ID < departments[j].ID
	})

	return departments, nil
}

func (s *Snapshot) recompute(department *domain.Department, includePastEmployees bool) *domain.Department {
	headcount, totalTenure := s.departmentStats(department, includePastEmployees)

	return &domain.Department{
		ID:                    department.ID,
		Name:                  department.Name,
		Headcount:             headcount,
		TotalTenureInMonths:   totalTenure,
		AverageTenureInMonths: roundedAverage(totalTenure, headcount),
	}
}
