package handler

import (
	"net/http"

	"github.com/vfg2006/people-directory-api/internal/api/handler/router"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
	"github.com/vfg2006/people-directory-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Employees(service directory.Directory) []router.Route {
	fresh := []func(http.Handler) http.Handler{RequireFreshDirectory(service)}

	return []router.Route{
		{
			Path:        "/v1/employees",
			Method:      http.MethodGet,
			Handler:     GetEmployees(service),
			Middlewares: fresh,
		},
		{
			Path:        "/v1/employees/:employeeId",
			Method:      http.MethodGet,
			Handler:     GetEmployee(service),
			Middlewares: fresh,
		},
	}
}

func Departments(service directory.Directory) []router.Route {
	fresh := []func(http.Handler) http.Handler{RequireFreshDirectory(service)}

	return []router.Route{
		{
			Path:        "/v1/departments",
			Method:      http.MethodGet,
			Handler:     GetDepartments(service),
			Middlewares: fresh,
		},
		{
			Path:        "/v1/departments/:departmentName",
			Method:      http.MethodGet,
			Handler:     GetDepartment(service),
			Middlewares: fresh,
		},
	}
}

func Cache(service directory.Directory, trigger RefreshTrigger, authEnabled bool) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cache/status",
			Method:  http.MethodGet,
			Handler: GetCacheStatus(service, trigger),
		},
		{
			Path:        "/v1/cache/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshCache(service, trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(authEnabled)},
		},
	}
}
