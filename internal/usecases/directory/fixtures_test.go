package directory

import (
	"time"

	"github.com/vfg2006/people-directory-api/internal/domain"
)

var fixtureNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// fixtureEmployees monta um relatório com gestor, desligados, departamento
// sem nome e funcionário sem departamento
func fixtureEmployees() []domain.Employee {
	return []domain.Employee{
		{
			GUID: "1", FirstName: "Ana", LastName: "Lima", Email: "ana@acme.com",
			StartDate: date(2020, 1, 1), DepartmentID: "ENG", DepartmentName: "Engineering",
		},
		{
			GUID: "2", FirstName: "Bia", LastName: "Souza", Email: "bia@acme.com",
			StartDate: date(2022, 1, 1), DepartmentID: "ENG", ManagerEmail: "ana@acme.com",
		},
		{
			GUID: "3", FirstName: "Caio", LastName: "Reis", Email: "caio@acme.com",
			StartDate: date(2021, 1, 1), DepartureDate: datePtr(2023, 1, 1),
			DepartmentID: "OPS", ManagerEmail: "ana@acme.com",
		},
		{
			GUID: "4", FirstName: "Duda", LastName: "Santana", Email: "duda@acme.com",
			StartDate: date(2024, 6, 13), ManagerEmail: "Ana@acme.com",
		},
		{
			GUID: "5", FirstName: "Eva", LastName: "Prado", Email: "eva@acme.com",
			StartDate: date(2019, 3, 1), DepartureDate: datePtr(2024, 1, 10),
			DepartmentID: "DEV", DepartmentName: "Development",
		},
	}
}

var fixtureCatalog = map[string]string{
	"OPS": "Operations",
	"ENG": "Ignored Because Report Has Name",
}

func timeParse(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
