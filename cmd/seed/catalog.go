package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

// readCatalog lee el catálogo exportado desde Excel: separador ';', ISO-8859-1, con encabezado.
// Columnas: codigo;nombre;codigo_barras;descripcion;stock_minimo (las dos últimas opcionales).
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []dto.CreateProductRequest
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos código y nombre", line)
		}
		code, name := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if code == "" && name == "" {
			continue
		}
		if code == "" || name == "" {
			return nil, fmt.Errorf("línea %d: código y nombre son obligatorios", line)
		}
		p := dto.CreateProductRequest{Code: code, Name: name}
		if len(rec) > 2 {
			p.Barcode = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			p.Description = strings.TrimSpace(rec[3])
		}
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			low, err := strconv.ParseInt(strings.TrimSpace(rec[4]), 10, 64)
			if err != nil || low < 0 {
				return nil, fmt.Errorf("línea %d: stock_minimo inválido %q", line, rec[4])
			}
			p.LowStock = low
			p.AlertLowStock = low > 0
		}
		out = append(out, p)
	}
	return out, nil
}
