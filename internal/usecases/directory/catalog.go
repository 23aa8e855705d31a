package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDepartmentCatalog lê um arquivo YAML no formato "codigo: nome" usado para
// nomear departamentos que não trazem nome no relatório
func LoadDepartmentCatalog(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler catálogo de departamentos: %w", err)
	}

	catalog := make(map[string]string)
	if err := yaml.Unmarshal(content, &catalog); err != nil {
		return nil, fmt.Errorf("erro ao decodificar catálogo de departamentos: %w", err)
	}

	return catalog, nil
}
