package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/model"
	repoMocks "realtyapi/internal/repository/mocks"
)

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	mRepo := new(repoMocks.MockInquiryRepository)
	mRepo.On("ListRecent", ctx, 200).Return([]model.Inquiry{
		{ID: 1, ListingTitle: "Lake House", Name: "Ana", Phone: "555", Message: "hi", ContactDate: &d},
		{ID: 2, ListingTitle: "Loft", Name: "Bo"},
	}, nil)

	out, err := NewReportService(mRepo, time.FixedZone("WIB", 7*3600)).Generate(ctx)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, time.UTC, d.Location(), "stored timestamps are not modified")
	mRepo.AssertExpectations(t)
}

func TestReportService_GenerateRepositoryError(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockInquiryRepository)
	mRepo.On("ListRecent", ctx, 200).Return(nil, errors.New("db fail"))

	out, err := NewReportService(mRepo, nil).Generate(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load inquiries: db fail")
	assert.Nil(t, out)
}
