package infra

// pdf.go — PDF ticket rendering using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets with:
//   - Configurable business header (name, slogan, address, phone, website)
//   - Sale id and timestamp
//   - Client line
//   - Item table (name, quantity, subtotal)
//   - Bold total, deposit and amount due lines
//   - Payment method stamp and configurable footer message
//
// The output file is saved to storagePath/ticket_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/matiiroda/mg/internal/model"
)

// GenerateTicketPDF renders a committed sale as a PDF receipt. storagePath is
// the directory where the PDF will be written (created if needed). Returns
// the absolute path to the generated file.
func GenerateTicketPDF(sale *model.Sale, cfg *model.TicketConfig, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, cfg.BusinessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	if cfg.Slogan != "" {
		pdf.CellFormat(contentW, 4, cfg.Slogan, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	for _, line := range []string{cfg.Address, cfg.Location, cfg.Phone, cfg.Website} {
		if line != "" {
			pdf.CellFormat(contentW, 4, line, "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 5, "Ticket "+sale.ID.String()[:8], "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.Timestamp.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Cliente: "+sale.ClientLabel, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // item name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Detalle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := item.Name
		// Truncate long names
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if !sale.Deposit.IsZero() {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1+col2, 4, "Seña:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "-$"+sale.Deposit.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1+col2, 5, "A pagar:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+sale.AmountDue().StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Payment method ────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Pago: "+sale.PaymentMethod, "", 1, "L", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	footer := cfg.FooterMessage
	if footer == "" {
		footer = "¡Gracias por su visita!"
	}
	pdf.CellFormat(contentW, 4, footer, "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
