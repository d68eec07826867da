package report

import (
	"sort"
	"strconv"
	"time"

	"realtyapi/internal/model"
)

// Header is the fixed column set of the contacts report.
var Header = []string{"ID", "Listing", "Name", "Phone", "Message", "Date"}

// Table is the report content before layout: one string per cell.
type Table struct {
	Title       string
	GeneratedAt time.Time
	Header      []string
	Rows        [][]string
}

// BuildTable orders inquiries newest first (undated last), keeps the first MaxRows
// and formats every cell.
func BuildTable(inquiries []model.Inquiry, generatedAt time.Time) *Table {
	sorted := make([]model.Inquiry, len(inquiries))
	copy(sorted, inquiries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i], sorted[j])
	})
	if len(sorted) > MaxRows {
		sorted = sorted[:MaxRows]
	}

	rows := make([][]string, 0, len(sorted))
	for _, in := range sorted {
		rows = append(rows, []string{
			strconv.FormatInt(in.ID, 10),
			in.ListingTitle,
			in.Name,
			in.Phone,
			FormatMessage(in.Message),
			FormatDate(in.ContactDate),
		})
	}

	return &Table{
		Title:       "Contacts Report",
		GeneratedAt: generatedAt,
		Header:      Header,
		Rows:        rows,
	}
}

func newer(a, b model.Inquiry) bool {
	switch {
	case a.ContactDate == nil:
		return false
	case b.ContactDate == nil:
		return true
	}
	return a.ContactDate.After(*b.ContactDate)
}
