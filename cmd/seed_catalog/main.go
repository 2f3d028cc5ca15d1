// seed_catalog genera un script SQL para cargar el catálogo inicial (productos + stock por talla)
// desde un CSV exportado de la hoja de cálculo del negocio (ISO-8859-1 o UTF-8).
//
// Uso: go run ./cmd/seed_catalog catalogo.csv [salida.sql]
//
// Columnas: name;description;price;cut_price;sizes;colors;is_active;is_featured
// sizes y colors separados por "|". Sin salida explícita escribe en stdout.
// Los ids se derivan del nombre (UUID v5) para que el script se pueda reaplicar.
package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/inventory"
)

var catalogNamespace = uuid.MustParse("6f1c9a52-3b1e-4c7a-9a51-0d3c2f8e7b10")

type seedProduct struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	CutPrice    *decimal.Decimal
	Sizes       []string
	Colors      []string
	IsActive    bool
	IsFeatured  bool
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog catalogo.csv [salida.sql]")
		os.Exit(2)
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	products, err := parseCatalog(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		f, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	if err := writeSQL(w, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d productos\n", len(products))
}

// decodeInput convierte de Latin-1 a UTF-8 cuando el archivo no es UTF-8 válido.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parseCatalog(r io.Reader) ([]seedProduct, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	var (
		products []seedProduct
		seen     = make(map[string]int)
	)
	for i, rec := range records {
		line := i + 1
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if prev, ok := seen[strings.ToLower(p.Name)]; ok {
			return nil, fmt.Errorf("línea %d: producto %q repetido (línea %d)", line, p.Name, prev)
		}
		seen[strings.ToLower(p.Name)] = line
		products = append(products, p)
	}
	return products, nil
}

func parseRecord(rec []string) (seedProduct, error) {
	for len(rec) < 8 {
		rec = append(rec, "")
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	p := seedProduct{Name: rec[0], Description: rec[1], IsActive: true}
	if p.Name == "" {
		return p, fmt.Errorf("name vacío")
	}
	p.ID = uuid.NewSHA1(catalogNamespace, []byte(strings.ToLower(p.Name))).String()

	price, err := decimal.NewFromString(strings.ReplaceAll(rec[2], ",", "."))
	if err != nil || price.IsNegative() {
		return p, fmt.Errorf("price inválido %q", rec[2])
	}
	p.Price = price
	if rec[3] != "" {
		cut, err := decimal.NewFromString(strings.ReplaceAll(rec[3], ",", "."))
		if err != nil || cut.IsNegative() {
			return p, fmt.Errorf("cut_price inválido %q", rec[3])
		}
		p.CutPrice = &cut
	}

	sizes, err := inventory.NormalizeSizes(splitList(rec[4]))
	if err != nil {
		return p, err
	}
	p.Sizes = sizes
	p.Colors = splitList(rec[5])

	if rec[6] != "" {
		if p.IsActive, err = strconv.ParseBool(rec[6]); err != nil {
			return p, fmt.Errorf("is_active inválido %q", rec[6])
		}
	}
	if rec[7] != "" {
		if p.IsFeatured, err = strconv.ParseBool(rec[7]); err != nil {
			return p, fmt.Errorf("is_featured inválido %q", rec[7])
		}
	}
	return p, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeSQL(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por seed_catalog\n")
	b.WriteString("BEGIN;\n\n")
	for _, p := range products {
		cut := "NULL"
		if p.CutPrice != nil {
			cut = p.CutPrice.StringFixed(2)
		}
		fmt.Fprintf(&b, "INSERT INTO products (id, name, description, price, cut_price, sizes, colors, is_active, is_featured)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %s, %s, %s, %s, %t, %t)\n",
			p.ID, escapeSQL(p.Name), escapeSQL(p.Description), p.Price.StringFixed(2), cut,
			textArray(p.Sizes), textArray(p.Colors), p.IsActive, p.IsFeatured)
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
		for _, size := range p.Sizes {
			id := uuid.NewSHA1(catalogNamespace, []byte(p.ID+"/"+size)).String()
			fmt.Fprintf(&b, "INSERT INTO stock_levels (id, product_id, size, quantity, low_threshold) VALUES ('%s', '%s', '%s', 0, %d)\n",
				id, p.ID, escapeSQL(size), entity.DefaultLowThreshold)
			b.WriteString("ON CONFLICT (product_id, size) DO NOTHING;\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func textArray(items []string) string {
	if len(items) == 0 {
		return "'{}'::TEXT[]"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + escapeSQL(it) + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::TEXT[]"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
