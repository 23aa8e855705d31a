package reportclient

import (
	"context"
	"net/http"
	"time"

	hrreportdomain "github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/domain"
	"github.com/vfg2006/people-directory-api/internal/config"
	"golang.org/x/time/rate"
)

type Client interface {
	GetReport(ctx context.Context) (*hrreportdomain.Table, error)
}

type HRReportClient struct {
	httpClient *http.Client
	config     config.HRReport
	limiter    *rate.Limiter
	maxBytes   int64
}

// NewClient cria o cliente do relatório de funcionários. As chamadas são
// limitadas a HR_REPORT_RATE_PER_SECOND; valores não positivos desativam o limite.
func NewClient(cfg *config.Config) Client {
	timeout := cfg.HRReport.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.HRReport.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.HRReport.RequestsPerSecond)
	}

	return &HRReportClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config:   cfg.HRReport,
		limiter:  rate.NewLimiter(limit, 1),
		maxBytes: maxReportBytes,
	}
}
