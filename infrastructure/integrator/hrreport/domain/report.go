package hrreportdomain

// Table é o relatório tabular retornado pela plataforma de RH: colunas
// ordenadas e linhas posicionalmente alinhadas a elas. Células nulas são nil.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// ColumnIndex retorna a posição de cada coluna pelo nome
func (t *Table) ColumnIndex() map[string]int {
	index := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}
