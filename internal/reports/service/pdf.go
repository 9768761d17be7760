package service

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"

	"srimurugan/pkg/model"
)

func renderPDF(r *BusReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("%s booking report", r.Bus.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(fmt.Sprintf("%s - Booking Report", r.Bus.Name)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generated on "+r.GeneratedOn.String())
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Total bookings      : %d (%d days)", r.Totals.TotalBookings, r.Totals.TotalDays),
		"Total revenue       : " + FormatRupees(r.Totals.TotalRevenue),
		"Advance collected   : " + FormatRupees(r.Totals.AdvanceCollected),
		"Outstanding balance : " + FormatRupees(r.Totals.OutstandingBalance),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, tr, "Ongoing trips", r.Ongoing)
	section(pdf, tr, "Upcoming trips", r.FutureTrips)
	section(pdf, tr, "Past trips", r.PastTrips)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var columns = []struct {
	title string
	width float64
}{
	{"Start", 24},
	{"End", 24},
	{"Days", 12},
	{"Party", 38},
	{"Destination", 38},
	{"Total", 27},
	{"Balance", 27},
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string, trips []*model.Booking) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("%s (%d)", title, len(trips)))
	pdf.Ln(8)

	if len(trips) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "None")
		pdf.Ln(9)
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	for _, c := range columns {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range trips {
		row := []string{
			b.BookingDate.String(),
			b.EndDate.String(),
			strconv.Itoa(b.NumberOfDays),
			truncate(b.PartyName, 22),
			truncate(b.To, 22),
			FormatRupees(b.TotalAmount),
			FormatRupees(b.Balance),
		}
		for i, c := range columns {
			align := "L"
			if i >= 5 {
				align = "R"
			}
			pdf.CellFormat(c.width, 6, tr(row[i]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// FormatRupees renders whole rupees with Indian digit grouping, e.g.
// 150000 as "Rs. 1,50,000".
func FormatRupees(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return "Rs. " + sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return "Rs. " + sign + strings.Join(groups, ",") + "," + tail
}
