package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
	"github.com/vfg2006/people-directory-api/pkg/apiErrors"
	"github.com/vfg2006/people-directory-api/pkg/log"
)

type employeesResponse struct {
	Employees []domain.Employee `json:"employees"`
}

type employeeResponse struct {
	Employee *domain.EmployeeWithReports `json:"employee"`
}

func GetEmployee(service directory.Directory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("employeeId")
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			logger.WithField("employee_id", id).Warn("employees: non-numeric employee id")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "employeeId must be numeric", nil)
			return
		}

		includeDirectReports, err := boolParam(r, "includeDirectReports")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		employee, err := service.GetEmployee(id, includeDirectReports)
		if err != nil {
			logger.WithError(err).WithField("employee_id", id).Info("employees: lookup failed")
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, employeeResponse{Employee: employee})
	})
}

func GetEmployees(service directory.Directory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		recentHires, err := boolParam(r, "recentHires")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		includePastEmployees, err := boolParam(r, "includePastEmployees")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		filters := domain.EmployeeFilters{
			FirstName:            query.Get("firstName"),
			LastName:             query.Get("lastName"),
			Email:                query.Get("email"),
			DepartmentID:         query.Get("departmentId"),
			RecentHires:          recentHires,
			IncludePastEmployees: includePastEmployees,
		}

		employees, err := service.GetEmployees(filters)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithField("count", len(employees)).Debug("employees: listed")
		writeJSON(w, r, http.StatusOK, employeesResponse{Employees: employees})
	})
}
