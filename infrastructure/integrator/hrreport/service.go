package hrreport

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/reportclient"
	"github.com/vfg2006/people-directory-api/internal/domain"
)

type HRReportIntegrator interface {
	GetEmployees(ctx context.Context) ([]domain.Employee, error)
}

type HRReportService struct {
	Client reportclient.Client
}

func New(client reportclient.Client) HRReportIntegrator {
	return &HRReportService{
		Client: client,
	}
}

// GetEmployees busca o relatório e converte cada linha em um funcionário,
// na mesma ordem do relatório
func (s *HRReportService) GetEmployees(ctx context.Context) ([]domain.Employee, error) {
	table, err := s.Client.GetReport(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "hrreport: fetching employee report")
	}

	employees, err := toEmployees(table)
	if err != nil {
		return nil, errors.Wrap(err, "hrreport: reading employee report")
	}

	return employees, nil
}
