package hrreport

import (
	"fmt"
	"strings"

	hrreportdomain "github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/domain"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/pkg/utils"
)

// Colunas conhecidas do relatório de funcionários
const (
	ColumnGUID           = "guid"
	ColumnFirstName      = "firstName"
	ColumnLastName       = "lastName"
	ColumnEmail          = "email"
	ColumnJobTitle       = "jobTitle"
	ColumnStatus         = "status"
	ColumnStartDate      = "startDate"
	ColumnDepartureDate  = "departureDate"
	ColumnManagerEmail   = "managerEmail"
	ColumnDepartmentID   = "departmentId"
	ColumnDepartmentName = "departmentName"
	ColumnLocation       = "location"
)

var requiredColumns = []string{
	ColumnGUID,
	ColumnFirstName,
	ColumnLastName,
	ColumnEmail,
	ColumnStartDate,
	ColumnDepartmentID,
}

var knownColumns = map[string]bool{
	ColumnGUID:           true,
	ColumnFirstName:      true,
	ColumnLastName:       true,
	ColumnEmail:          true,
	ColumnJobTitle:       true,
	ColumnStatus:         true,
	ColumnStartDate:      true,
	ColumnDepartureDate:  true,
	ColumnManagerEmail:   true,
	ColumnDepartmentID:   true,
	ColumnDepartmentName: true,
	ColumnLocation:       true,
}

// MissingColumnsError lista as colunas obrigatórias ausentes no relatório
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("relatório sem colunas obrigatórias: %s", strings.Join(e.Columns, ", "))
}

type rowReader struct {
	index map[string]int
	row   []*string
}

func (r rowReader) text(column string) string {
	i, ok := r.index[column]
	if !ok || r.row[i] == nil {
		return ""
	}
	return strings.TrimSpace(*r.row[i])
}

func validateColumns(index map[string]int) error {
	var missing []string
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// toEmployees converte as linhas do relatório em funcionários tipados
func toEmployees(table *hrreportdomain.Table) ([]domain.Employee, error) {
	index := table.ColumnIndex()
	if err := validateColumns(index); err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(table.Rows))
	for i, row := range table.Rows {
		reader := rowReader{index: index, row: row}

		guid := reader.text(ColumnGUID)
		if guid == "" {
			return nil, fmt.Errorf("linha %d sem %s", i, ColumnGUID)
		}

		startDate, err := utils.ParseReportDate(reader.text(ColumnStartDate))
		if err != nil {
			return nil, fmt.Errorf("linha %d (%s): %s inválido: %w", i, guid, ColumnStartDate, err)
		}
		if startDate == nil {
			return nil, fmt.Errorf("linha %d (%s): %s ausente", i, guid, ColumnStartDate)
		}

		departureDate, err := utils.ParseReportDate(reader.text(ColumnDepartureDate))
		if err != nil {
			return nil, fmt.Errorf("linha %d (%s): %s inválido: %w", i, guid, ColumnDepartureDate, err)
		}

		employee := domain.Employee{
			GUID:           guid,
			FirstName:      reader.text(ColumnFirstName),
			LastName:       reader.text(ColumnLastName),
			Email:          reader.text(ColumnEmail),
			JobTitle:       reader.text(ColumnJobTitle),
			Status:         reader.text(ColumnStatus),
			StartDate:      *startDate,
			DepartureDate:  departureDate,
			ManagerEmail:   reader.text(ColumnManagerEmail),
			DepartmentID:   reader.text(ColumnDepartmentID),
			DepartmentName: reader.text(ColumnDepartmentName),
			Location:       reader.text(ColumnLocation),
		}

		for column, position := range index {
			if knownColumns[column] || row[position] == nil {
				continue
			}
			if employee.Attributes == nil {
				employee.Attributes = make(map[string]string)
			}
			employee.Attributes[column] = *row[position]
		}

		employees = append(employees, employee)
	}

	return employees, nil
}
