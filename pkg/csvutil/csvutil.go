// Package csvutil implementa la serialización CSV de los exports
// (delimitador ';', BOM UTF-8 inicial, escaping por valor).
package csvutil

import (
	"strings"
	"time"
)

// Delimiter separador de campos de los exports.
const Delimiter = ";"

// BOM marca de orden de bytes UTF-8 que antecede al texto del export.
const BOM = "\uFEFF"

// Escape escapa un valor para CSV:
//   - Rodea con comillas si contiene el delimitador, comillas, saltos de línea o retorno de carro
//   - Duplica las comillas internas según la especificación CSV
func Escape(value string) string {
	if !strings.ContainsAny(value, Delimiter+"\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// FormatTimestamp formatea una fecha para los exports (YYYY-MM-DD HH:MM:SS en UTC).
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// Join escapa cada campo y los une con el delimitador.
func Join(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, Delimiter)
}
