package query

import (
	"context"
	"fmt"

	"adra/internal/store"
	"adra/pkg/types"
)

// Service is the admin listing surface: status/search filtering with stable
// insertion ordering, pagination, and CSV export over the same filter.
type Service struct {
	beneficiaries store.BeneficiaryStore
	donations     store.DonationStore
	requests      store.RequestStore
}

func NewService(beneficiaries store.BeneficiaryStore, donations store.DonationStore, requests store.RequestStore) *Service {
	return &Service{
		beneficiaries: beneficiaries,
		donations:     donations,
		requests:      requests,
	}
}

type BeneficiaryPage struct {
	Items      []*types.Beneficiary `json:"items"`
	Pagination types.Pagination     `json:"pagination"`
}

type DonationPage struct {
	Items      []*types.Donation `json:"items"`
	Pagination types.Pagination  `json:"pagination"`
}

type RequestPage struct {
	Items      []*types.Request `json:"items"`
	Pagination types.Pagination `json:"pagination"`
}

func (s *Service) Beneficiaries(ctx context.Context, filter types.ListFilter) (*BeneficiaryPage, error) {
	filter = filter.Normalize()

	items, total, err := s.beneficiaries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries: %w", err)
	}

	return &BeneficiaryPage{Items: items, Pagination: types.NewPagination(filter, total)}, nil
}

func (s *Service) Donations(ctx context.Context, filter types.ListFilter) (*DonationPage, error) {
	filter = filter.Normalize()

	items, total, err := s.donations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}

	return &DonationPage{Items: items, Pagination: types.NewPagination(filter, total)}, nil
}

func (s *Service) Requests(ctx context.Context, filter types.ListFilter) (*RequestPage, error) {
	filter = filter.Normalize()

	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}

	return &RequestPage{Items: items, Pagination: types.NewPagination(filter, total)}, nil
}
