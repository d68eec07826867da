package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/model"
)

func ptr(t time.Time) *time.Time { return &t }

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
		suffix  bool
	}{
		{"short", "hello", 5, false},
		{"exactly limit", strings.Repeat("a", 200), 200, false},
		{"over limit", strings.Repeat("a", 250), 200, true},
		{"multibyte over limit", strings.Repeat("é", 201), 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMessage(tt.in)
			assert.Equal(t, tt.wantLen, len([]rune(got)))
			assert.Equal(t, tt.suffix, strings.HasSuffix(got, "..."))
			if tt.suffix {
				assert.Equal(t, string([]rune(tt.in)[:197]), strings.TrimSuffix(got, "..."))
			} else {
				assert.Equal(t, tt.in, got)
			}
		})
	}
}

func TestFormatMessageNormalizesNewlines(t *testing.T) {
	assert.Equal(t, "line one\nline two\nthree", FormatMessage("line one\r\nline two\rthree"))
}

func TestFormatDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	d := time.Date(2024, 3, 9, 7, 5, 59, 0, loc)

	assert.Equal(t, "2024-03-09 07:05", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
}

func TestBuildTableOrdersAndCaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var rows []model.Inquiry
	for i := 0; i < 250; i++ {
		rows = append(rows, model.Inquiry{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("buyer %d", i),
			ContactDate: ptr(base.Add(time.Duration(i) * time.Hour)),
		})
	}
	rows = append(rows, model.Inquiry{ID: 999, Name: "undated"})

	table := BuildTable(rows, base)

	require.Len(t, table.Rows, MaxRows)
	assert.Equal(t, Header, table.Header)
	// newest first: ids 250 down to 51
	assert.Equal(t, "250", table.Rows[0][0])
	assert.Equal(t, "51", table.Rows[MaxRows-1][0])
	for i := 1; i < len(table.Rows); i++ {
		assert.GreaterOrEqual(t, table.Rows[i-1][5], table.Rows[i][5])
	}
}

func TestBuildTableCells(t *testing.T) {
	long := strings.Repeat("x", 250)
	table := BuildTable([]model.Inquiry{
		{ID: 7, ListingTitle: "Lake House", Name: "Ana", Phone: "555-0100", Message: long},
	}, time.Time{})

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Len(t, row, 6)
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "Lake House", row[1])
	assert.Equal(t, "Ana", row[2])
	assert.Equal(t, "555-0100", row[3])
	assert.Len(t, row[4], 200)
	assert.True(t, strings.HasSuffix(row[4], "..."))
	assert.Equal(t, "", row[5])
}

func TestBuildTableDoesNotMutateInput(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	in := []model.Inquiry{{ID: 1, ContactDate: &older}, {ID: 2, ContactDate: &newer}}

	table := BuildTable(in, time.Time{})

	assert.Equal(t, "2", table.Rows[0][0])
	assert.Equal(t, int64(1), in[0].ID)
}

func TestRenderProducesPDF(t *testing.T) {
	d := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	table := BuildTable([]model.Inquiry{
		{ID: 1, ListingTitle: "Cabin", Name: "Zoë", Phone: "1", Message: "first line\nsecond line", ContactDate: &d},
		{ID: 2, ListingTitle: "Loft", Name: "Bo", Phone: "2", Message: ""},
	}, d)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, BuildTable(nil, time.Now())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderRepeatsHeaderOnEveryPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var rows []model.Inquiry
	for i := 0; i < MaxRows; i++ {
		rows = append(rows, model.Inquiry{
			ID:           int64(i + 1),
			ListingTitle: "Ocean view villa with a long descriptive title",
			Name:         "Prospective buyer",
			Phone:        "555-0199",
			Message:      strings.Repeat("lorem ipsum dolor sit amet ", 7),
			ContactDate:  ptr(base.Add(time.Duration(i) * time.Minute)),
		})
	}

	pdf, err := build(BuildTable(rows, base))
	require.NoError(t, err)
	require.Greater(t, pdf.PageCount(), 1)

	pdf.SetCompression(false)
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Equal(t, pdf.PageCount(), bytes.Count(buf.Bytes(), []byte("(Message) Tj")))
}

func TestRenderRejectsMismatchedHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, &Table{Header: []string{"only"}})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderSplitsRowTallerThanPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.Inquiry{{
		ID:          1,
		Name:        "Buyer",
		Message:     strings.Repeat("x\n", 99) + "x",
		ContactDate: ptr(base),
	}}

	pdf, err := build(BuildTable(rows, base))
	require.NoError(t, err)

	_, pageHeight := pdf.GetPageSize()
	assert.LessOrEqual(t, pdf.GetY(), pageHeight-margin)
	assert.GreaterOrEqual(t, pdf.PageCount(), 3)

	pdf.SetCompression(false)
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	// every line is drawn exactly once and the first page is not left empty
	assert.Equal(t, 100, bytes.Count(buf.Bytes(), []byte("(x) Tj")))
	assert.Equal(t, pdf.PageCount(), bytes.Count(buf.Bytes(), []byte("(Message) Tj")))
}

func TestRenderMovesFittingRowToNextPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.Inquiry{
		{ID: 2, Name: "Tall", Message: strings.Repeat("y\n", 29) + "y", ContactDate: ptr(base.Add(time.Hour))},
		{ID: 1, Name: "Also tall", Message: strings.Repeat("z\n", 29) + "z", ContactDate: ptr(base)},
	}

	pdf, err := build(BuildTable(rows, base))
	require.NoError(t, err)
	assert.Equal(t, 2, pdf.PageCount())

	pdf.SetCompression(false)
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Equal(t, 30, bytes.Count(buf.Bytes(), []byte("(z) Tj")))
}
