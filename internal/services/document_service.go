package services

import (
	"bytes"
	"context"
	"fmt"

	"asset-backend/internal/models"
	"asset-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

// DocumentService renders printable purchase request documents
type DocumentService struct {
	Requests RequestStore
}

func NewDocumentService(requests RequestStore) *DocumentService {
	return &DocumentService{Requests: requests}
}

// RequestPDF renders one request as a purchase request document
func (s *DocumentService) RequestPDF(ctx context.Context, id string) ([]byte, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Purchase Request", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Request Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Document No: %s", req.DocNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Request ID: %s", req.ID), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Requester: %s", req.Requester), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Division: %s", req.Division), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", req.RequestDate.Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", req.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Order Type: %s", req.Order.Type), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(10, 7, "No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Type/Brand", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Appr.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Subtotal", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	total := decimal.Zero
	for _, item := range req.Items {
		status := req.ItemStatuses[item.ID]
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(status.ApprovedQuantity)))
		total = total.Add(subtotal)

		pdf.CellFormat(10, 6, fmt.Sprintf("%d", item.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, item.ItemName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, item.ItemTypeBrand, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", status.ApprovedQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(165, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, total.StringFixed(2), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Approvals", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Logistic: %s", deref(req.LogisticApprover)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Final: %s", deref(req.FinalApprover)), "RB", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &models.PersistenceError{Op: "document.render", Err: err}
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
