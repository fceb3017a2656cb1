package payroll

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"contracheque/internal/platform/money"
)

// WritePayslipPDF renders the payslip view as a one-page A4 document.
func WritePayslipPDF(w io.Writer, view PayslipView) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Simulador de Contracheque", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("SIMULADOR DE CONTRACHEQUE"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(20, 7, tr("CÓD."), "1", 0, "C", true, 0, "")
	pdf.CellFormat(120, 7, tr("DESCRIÇÃO"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, tr("VALOR"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	row := func(item LineItem) {
		pdf.CellFormat(20, 6, item.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(120, 6, tr(item.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tr(money.FormatBRL(item.Amount)), "1", 1, "R", false, 0, "")
	}
	lines := view.Lines()
	totals := len(lines) - 2
	for i, item := range lines {
		if i == totals {
			pdf.SetFont("Helvetica", "B", 10)
		}
		row(item)
	}

	return pdf.Output(w)
}
