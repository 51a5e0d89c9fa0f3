package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Invoice is the printable view of an order.
type Invoice struct {
	OrderID    string
	BuyerName  string
	BuyerEmail string
	Status     string
	CreatedAt  time.Time
	Lines      []InvoiceLine
	Total      float64
}

type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

func (l InvoiceLine) Amount() float64 { return l.UnitPrice * float64(l.Quantity) }

// InvoiceRenderer writes invoices as PDF.
type InvoiceRenderer struct {
	issuer string
}

func NewInvoiceRenderer(issuer string) *InvoiceRenderer {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &InvoiceRenderer{issuer: issuer}
}

func (r *InvoiceRenderer) RenderInvoice(w io.Writer, inv Invoice) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.OrderID, true)
	pdf.SetAuthor(r.issuer, true)
	pdf.SetCreationDate(inv.CreatedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.issuer+" Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Invoice for Order ID: "+inv.OrderID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Customer: %s (%s)", inv.BuyerName, inv.BuyerEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+inv.CreatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Status: "+inv.Status, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, l := range inv.Lines {
		pdf.CellFormat(90, 7, l.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", l.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("$%.2f", l.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("$%.2f", l.Amount()), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 10, "Total Price", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 10, fmt.Sprintf("$%.2f", inv.Total), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}
