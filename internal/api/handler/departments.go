package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
)

type departmentsResponse struct {
	Departments []domain.Department `json:"departments"`
}

type departmentResponse struct {
	Department *domain.Department `json:"department"`
}

func GetDepartments(service directory.Directory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		includePastEmployees, err := boolParam(r, "includePastEmployees")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		departments, err := service.GetDepartments(includePastEmployees)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, departmentsResponse{Departments: departments})
	})
}

func GetDepartment(service directory.Directory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("departmentName")

		includePastEmployees, err := boolParam(r, "includePastEmployees")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		department, err := service.GetDepartmentByName(name, includePastEmployees)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, departmentResponse{Department: department})
	})
}
