package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"realtyapi/internal/report"
	"realtyapi/internal/repository"
)

// ReportService builds the realtor contacts report.
type ReportService interface {
	// Generate renders the newest inquiries as a PDF. The result is never cached.
	Generate(ctx context.Context) ([]byte, error)
}

type reportService struct {
	repo repository.InquiryRepository
	loc  *time.Location
	now  func() time.Time
}

// NewReportService constructs a ReportService printing dates in loc (UTC when nil).
func NewReportService(repo repository.InquiryRepository, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{repo: repo, loc: loc, now: time.Now}
}

func (s *reportService) Generate(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.ListRecent(ctx, report.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("load inquiries: %w", err)
	}
	for i := range rows {
		if rows[i].ContactDate != nil {
			local := rows[i].ContactDate.In(s.loc)
			rows[i].ContactDate = &local
		}
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, report.BuildTable(rows, s.now().In(s.loc))); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
