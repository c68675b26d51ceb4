// Package evidencepack renders the printable audit-trail "evidence pack"
// for a single piece of evidence: the submission metadata plus the full
// ordered verification log.
package evidencepack

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"siteproof/internal/models"
)

// PackData is everything the pack renders.
type PackData struct {
	Project     models.Project
	WorkPackage models.WorkPackage
	Evidence    models.Evidence
	Logs        []models.VerificationLog // expected ordered by acted_at descending
	GeneratedAt time.Time
}

const dateFormat = "2006-01-02 15:04 MST"

// Render produces the evidence pack as PDF bytes.
func Render(data PackData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Evidence Pack", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", data.GeneratedAt.Format(dateFormat)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// Evidence summary
	writeField(pdf, "Project", projectLabel(data.Project))
	writeField(pdf, "Work Package", fmt.Sprintf("%s - %s", data.WorkPackage.ItemCode, data.WorkPackage.Title))
	writeField(pdf, "Evidence ID", data.Evidence.ID)
	writeField(pdf, "Status", strings.ToUpper(string(data.Evidence.Status)))
	writeField(pdf, "Taken At", data.Evidence.TakenAt.Format(dateFormat))
	writeField(pdf, "GPS", gpsLabel(data.Evidence))
	writeField(pdf, "Notes", orDash(data.Evidence.Notes))
	writeField(pdf, "Device", orDash(data.Evidence.DeviceInfo))
	writeField(pdf, "Photo", orDash(data.Evidence.PhotoPath))
	pdf.Ln(6)

	// Audit trail
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Verification Log (Audit Trail)", "", 1, "L", false, 0, "")

	if len(data.Logs) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No actions yet.", "", 1, "L", false, 0, "")
	}

	for _, entry := range data.Logs {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s",
			strings.ToUpper(string(entry.Action)),
			entry.ActedAt.Format(dateFormat)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("Comment: %s", orDash(entry.Comment)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Acted by: %s", entry.ActedBy), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render evidence pack: %w", err)
	}
	return buf.Bytes(), nil
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func projectLabel(p models.Project) string {
	if p.Client != "" {
		return fmt.Sprintf("%s - %s", p.Name, p.Client)
	}
	return p.Name
}

func gpsLabel(e models.Evidence) string {
	if !e.HasGPS() {
		return "-"
	}
	return fmt.Sprintf("%.6f, %.6f", *e.GPSLat, *e.GPSLng)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
