package reportclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	hrreportdomain "github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/domain"
)

const maxReportBytes int64 = 64 << 20

var ErrReportTooLarge = errors.New("relatório excede o tamanho máximo")

func (c *HRReportClient) GetReport(ctx context.Context) (*hrreportdomain.Table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("aguardando limite de requisições: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: limite de %d bytes", ErrReportTooLarge, c.maxBytes)
	}

	return ParseReport(body)
}

// ParseReport extrai reports[0].columns e reports[0].content do payload JSON
func ParseReport(body []byte) (*hrreportdomain.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("resposta não é um JSON válido")
	}

	report := gjson.GetBytes(body, "reports.0")
	if !report.Exists() {
		return nil, fmt.Errorf("resposta sem reports[0]")
	}

	columns := report.Get("columns")
	if !columns.IsArray() {
		return nil, fmt.Errorf("reports[0].columns ausente ou inválido")
	}

	table := &hrreportdomain.Table{}
	for i, column := range columns.Array() {
		name := column.Get("name")
		if name.Type != gjson.String || name.String() == "" {
			return nil, fmt.Errorf("coluna %d sem nome", i)
		}
		table.Columns = append(table.Columns, name.String())
	}

	content := report.Get("content")
	if !content.IsArray() {
		return nil, fmt.Errorf("reports[0].content ausente ou inválido")
	}

	for i, row := range content.Array() {
		if !row.IsArray() {
			return nil, fmt.Errorf("linha %d não é uma lista", i)
		}

		cells := row.Array()
		if len(cells) != len(table.Columns) {
			return nil, fmt.Errorf("linha %d possui %d células, esperado %d", i, len(cells), len(table.Columns))
		}

		values := make([]*string, len(cells))
		for j, cell := range cells {
			if cell.Type == gjson.Null {
				continue
			}
			value := cell.String()
			values[j] = &value
		}
		table.Rows = append(table.Rows, values)
	}

	return table, nil
}
