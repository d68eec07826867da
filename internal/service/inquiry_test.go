package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/model"
	repoMocks "realtyapi/internal/repository/mocks"
)

func TestInquiryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		listingID  int64
		in         *model.Inquiry
		setup      func(l *repoMocks.MockListingRepository, q *repoMocks.MockInquiryRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:      "happy path copies listing title",
			listingID: 5,
			in:        &model.Inquiry{Name: " Ana ", Email: "ana@example.com", Phone: "555", Message: "Is it available?"},
			setup: func(l *repoMocks.MockListingRepository, q *repoMocks.MockInquiryRepository) {
				l.On("FindByID", ctx, int64(5)).Return(&model.Listing{ID: 5, Title: "Lake House"}, nil)
				q.On("Create", ctx, mock.MatchedBy(func(in *model.Inquiry) bool {
					return in.ListingID == 5 && in.ListingTitle == "Lake House" && in.Name == "Ana"
				})).Return(&model.Inquiry{ID: 1, ListingID: 5}, nil)
			},
		},
		{name: "validation error - nil body", listingID: 5, wantErr: ErrInvalidInquiry},
		{name: "validation error - name", listingID: 5, in: &model.Inquiry{Email: "a@b", Phone: "1"}, wantErrMsg: "name is required"},
		{name: "validation error - email", listingID: 5, in: &model.Inquiry{Name: "a", Phone: "1"}, wantErrMsg: "email is required"},
		{name: "validation error - phone", listingID: 5, in: &model.Inquiry{Name: "a", Email: "a@b"}, wantErrMsg: "phone is required"},
		{
			name:      "listing not found",
			listingID: 9,
			in:        &model.Inquiry{Name: "a", Email: "a@b", Phone: "1"},
			setup: func(l *repoMocks.MockListingRepository, _ *repoMocks.MockInquiryRepository) {
				l.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "repository error",
			listingID: 5,
			in:        &model.Inquiry{Name: "a", Email: "a@b", Phone: "1"},
			setup: func(l *repoMocks.MockListingRepository, q *repoMocks.MockInquiryRepository) {
				l.On("FindByID", ctx, int64(5)).Return(&model.Listing{ID: 5}, nil)
				q.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "save inquiry: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mListings := new(repoMocks.MockListingRepository)
			mInquiries := new(repoMocks.MockInquiryRepository)
			if tt.setup != nil {
				tt.setup(mListings, mInquiries)
			}
			svc := NewInquiryService(NewListingService(mListings, nil, nil, nil), mInquiries)

			out, err := svc.Create(ctx, tt.listingID, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(1), out.ID)
			}
			mListings.AssertExpectations(t)
			mInquiries.AssertExpectations(t)
		})
	}
}
