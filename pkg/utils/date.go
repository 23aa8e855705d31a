package utils

import (
	"fmt"
	"time"
)

var reportDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
}

// ParseReportDate interpreta datas do relatório de RH. Valores vazios e a
// data zero "0000-00-00" retornam nil sem erro.
func ParseReportDate(value string) (*time.Time, error) {
	if value == "" || value == "0000-00-00" || value == "null" {
		return nil, nil
	}

	for _, layout := range reportDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}

	return nil, fmt.Errorf("formato de data não reconhecido: %q", value)
}
