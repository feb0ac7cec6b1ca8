// Package flatfile encodes and decodes the semicolon-separated text format
// used to move collections in and out of the system. The format is the one
// the shop's spreadsheets already speak: ';' between cells, '\n' between
// records, a UTF-8 BOM up front so Excel picks the right charset, and
// " | " joined sub-items inside a single cell.
package flatfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taller_manager/internal/domain/entities"

	"github.com/google/uuid"
)

const (
	cellSeparator = ";"
	itemSeparator = " | "
	bom           = "\uFEFF"
)

var serviceHeaders = []string{
	"ID Servicio", "Estado", "Fecha Ingreso", "Fecha Término", "Cliente",
	"Teléfono", "Vehículo", "Patente", "Motivo Ingreso",
	"Detalle Trabajos", "Costos Asociados", "Monto Total", "Monto Abono", "Fecha Abono",
}

var costHeaders = []string{"ID Gasto", "Fecha", "Descripción", "Categoría", "Monto ($)"}

var quoteHeaders = []string{
	"ID Cotización", "Fecha Emisión", "Cliente", "Teléfono", "Vehículo",
	"Detalle Items", "Notas", "Validez (Días)", "Total ($)",
}

var (
	serviceItemPattern = regexp.MustCompile(`(.+?) \(\$(\d+)\)`)
	quoteItemPattern   = regexp.MustCompile(`\((\d+)\) (.+?) \$(\d+)`)
)

// EncodeServices renders the service collection. Sub-item cells use the
// "desc ($amount)" form; a service with no itemized labor gets the single
// "Mano de Obra Base ($<price>)" line so the cell is never empty.
func EncodeServices(services []entities.Service) []byte {
	rows := make([][]string, 0, len(services))
	for _, s := range services {
		var laborTotal int64
		for _, it := range s.LaborItems {
			laborTotal += it.Amount
		}
		laborTotal += s.Price
		total := laborTotal + s.ExpensesTotal()

		advanceAmount := s.Advance
		advanceDate := "-"
		if p, ok := s.FindPayment(entities.PaymentTypeAdvance); ok {
			advanceAmount = p.Amount
			advanceDate = entities.FormatDisplayDate(p.Date)
		}
		endDate := "En proceso"
		if p, ok := s.FindPayment(entities.PaymentTypeFinal); ok {
			endDate = entities.FormatDisplayDate(p.Date)
		} else if s.Status == entities.ServiceStatusCompleted {
			endDate = "Sin fecha registro"
		}

		labor := encodeLineItems(s.LaborItems)
		if labor == "" {
			labor = fmt.Sprintf("Mano de Obra Base ($%d)", s.Price)
		}

		rows = append(rows, []string{
			s.ID,
			s.Status.Label(),
			entities.FormatDisplayDate(s.EntryDate),
			endDate,
			s.ClientName,
			s.Phone,
			s.Brand + " " + s.Model,
			s.Plate,
			s.Reason,
			labor,
			encodeLineItems(s.Expenses),
			strconv.FormatInt(total, 10),
			strconv.FormatInt(advanceAmount, 10),
			advanceDate,
		})
	}
	return render(serviceHeaders, rows)
}

// DecodeServices parses a service document. Rows with fewer than five cells
// are skipped. Payments are reconstructed from the flat amount columns: the
// advance when positive, plus the balance dated at the end date when the row
// reads completed and the total exceeds the advance. The legacy price column
// is not round-tripped; imported services carry itemized labor only.
func DecodeServices(data []byte, now time.Time) []entities.Service {
	out := []entities.Service{}
	for _, row := range dataRows(data, 5) {
		status := entities.ServiceStatusFromLabel(cell(row, 1))
		plate := cell(row, 7)
		plateRef := plate
		if plateRef == "" {
			plateRef = "X"
		}

		advance, _ := strconv.ParseInt(cell(row, 12), 10, 64)
		total, _ := strconv.ParseInt(cell(row, 11), 10, 64)

		payments := []entities.PaymentEvent{}
		if advance > 0 {
			payments = append(payments, entities.PaymentEvent{
				ID:          uuid.NewString(),
				Amount:      advance,
				Date:        parseImportDate(cell(row, 13), now),
				Type:        entities.PaymentTypeAdvance,
				Description: "Adelanto de Patente " + plateRef,
			})
		}
		if status == entities.ServiceStatusCompleted && total > advance {
			payments = append(payments, entities.PaymentEvent{
				ID:          uuid.NewString(),
				Amount:      total - advance,
				Date:        parseImportDate(cell(row, 3), now),
				Type:        entities.PaymentTypeFinal,
				Description: "Saldo Final Patente " + plateRef,
			})
		}

		brand, model := splitBrandModel(cell(row, 6))
		clientName := cell(row, 4)
		if clientName == "" {
			clientName = "Sin Nombre"
		}

		out = append(out, entities.Service{
			ID:         idOrNew(cell(row, 0)),
			Status:     status,
			EntryDate:  parseImportDate(cell(row, 2), now),
			ClientName: clientName,
			Phone:      cell(row, 5),
			Brand:      brand,
			Model:      model,
			Plate:      plate,
			Reason:     cell(row, 8),
			LaborItems: decodeLineItems(cell(row, 9)),
			Expenses:   decodeLineItems(cell(row, 10)),
			Price:      0,
			Advance:    advance,
			Payments:   payments,
		})
	}
	return out
}

func EncodeCosts(costs []entities.Cost) []byte {
	rows := make([][]string, 0, len(costs))
	for _, c := range costs {
		rows = append(rows, []string{
			c.ID,
			entities.FormatDisplayDate(c.Date),
			c.Description,
			c.Category.Label(),
			strconv.FormatInt(c.Amount, 10),
		})
	}
	return render(costHeaders, rows)
}

func DecodeCosts(data []byte, now time.Time) []entities.Cost {
	out := []entities.Cost{}
	for _, row := range dataRows(data, 5) {
		category := entities.CostCategoryFromLabel(cell(row, 3))
		amount, _ := strconv.ParseInt(cell(row, 4), 10, 64)
		out = append(out, entities.Cost{
			ID:          idOrNew(cell(row, 0)),
			Date:        parseImportDate(cell(row, 1), now),
			Description: cell(row, 2),
			Category:    category,
			Amount:      amount,
		})
	}
	return out
}

// EncodeQuotes flattens all three item lists into one cell of
// "(qty) desc $unitPrice" entries.
func EncodeQuotes(quotes []entities.Quote) []byte {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		var items []string
		for _, it := range q.EffectiveItems() {
			items = append(items, fmt.Sprintf("(%d) %s $%d", it.Quantity, it.Description, it.UnitPrice))
		}
		rows = append(rows, []string{
			q.ID,
			entities.FormatDisplayDate(q.Date),
			q.ClientName,
			q.Phone,
			q.Vehicle,
			strings.Join(items, itemSeparator),
			q.Notes,
			strconv.Itoa(q.ValidityDays),
			strconv.FormatInt(q.Total, 10),
		})
	}
	return render(quoteHeaders, rows)
}

// DecodeQuotes parses a quote document. The export merged every item list
// into one cell, so the split cannot be recovered: all parsed items land in
// the expense list and the other two stay empty. Imported quotes come back
// pending.
func DecodeQuotes(data []byte, now time.Time) []entities.Quote {
	out := []entities.Quote{}
	for _, row := range dataRows(data, 8) {
		validity, _ := strconv.Atoi(cell(row, 7))
		if validity <= 0 {
			validity = 15
		}
		total, _ := strconv.ParseInt(cell(row, 8), 10, 64)
		out = append(out, entities.Quote{
			ID:           idOrNew(cell(row, 0)),
			Date:         parseImportDate(cell(row, 1), now),
			ClientName:   cell(row, 2),
			Phone:        cell(row, 3),
			Vehicle:      cell(row, 4),
			ExpenseItems: decodeQuoteItems(cell(row, 5)),
			LaborItems:   []entities.QuoteLineItem{},
			Items:        []entities.QuoteLineItem{},
			Notes:        cell(row, 6),
			ValidityDays: validity,
			Total:        total,
			Status:       entities.QuoteStatusPending,
		})
	}
	return out
}

func render(headers []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(strings.Join(headers, cellSeparator))
	for _, row := range rows {
		b.WriteString("\n")
		for i, c := range row {
			if i > 0 {
				b.WriteString(cellSeparator)
			}
			b.WriteString(sanitizeCell(c))
		}
	}
	return []byte(b.String())
}

// sanitizeCell keeps a value from breaking the grid: separators become
// commas and line breaks become spaces.
func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, cellSeparator, ",")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// dataRows splits the document into cell rows, dropping the BOM, the header
// line and any row with fewer than minCells cells.
func dataRows(data []byte, minCells int) [][]string {
	text := strings.TrimPrefix(string(data), bom)
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue
		}
		line = strings.TrimSuffix(line, "\r")
		cells := strings.Split(line, cellSeparator)
		if len(cells) < minCells {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func encodeLineItems(items []entities.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s ($%d)", it.Description, it.Amount))
	}
	return strings.Join(parts, itemSeparator)
}

// decodeLineItems parses "desc ($100) | desc2 ($200)" back into a list.
// Entries that do not match the pattern are dropped.
func decodeLineItems(s string) []entities.LineItem {
	out := []entities.LineItem{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, itemSeparator) {
		m := serviceItemPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		amount, _ := strconv.ParseInt(m[2], 10, 64)
		out = append(out, entities.LineItem{
			ID:          uuid.NewString(),
			Description: m[1],
			Amount:      amount,
		})
	}
	return out
}

func decodeQuoteItems(s string) []entities.QuoteLineItem {
	out := []entities.QuoteLineItem{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, itemSeparator) {
		m := quoteItemPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		qty, _ := strconv.ParseInt(m[1], 10, 64)
		unit, _ := strconv.ParseInt(m[3], 10, 64)
		out = append(out, entities.QuoteLineItem{
			ID:          uuid.NewString(),
			Quantity:    qty,
			Description: m[2],
			UnitPrice:   unit,
		})
	}
	return out
}

// splitBrandModel undoes the "Brand Model" join from the export. The first
// token is the brand, the rest the model.
func splitBrandModel(s string) (brand, model string) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// parseImportDate accepts the display formats the export writes plus
// anything the record-date parser understands. Placeholder cells and
// unparseable values fall back to the import time.
func parseImportDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "Sin fecha registro" || s == "En proceso" {
		return now.UTC().Format(time.RFC3339)
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			day, errD := strconv.Atoi(parts[0])
			month, errM := strconv.Atoi(parts[1])
			year, errY := strconv.Atoi(parts[2])
			if errD == nil && errM == nil && errY == nil && month >= 1 && month <= 12 {
				t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	if t, ok := entities.ParseRecordDate(s); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return now.UTC().Format(time.RFC3339)
}
