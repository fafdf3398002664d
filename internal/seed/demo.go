package seed

import (
	"context"
	"errors"
	"fmt"

	"adra/internal/store"
	"adra/pkg/types"
)

func int64Ptr(v int64) *int64 {
	return &v
}

// Demo inserts a small data set for local development: a couple of
// beneficiaries in different workflow states, donations of both kinds, and
// one aid request. Re-running against an existing database is a no-op for
// records whose contact details already exist.
func Demo(ctx context.Context, beneficiaries store.BeneficiaryStore, donations store.DonationStore, requests store.RequestStore) error {
	demoBeneficiaries := []*types.Beneficiary{
		{
			Name:          "João Silva",
			Email:         "joao@example.com",
			Phone:         "11999999999",
			DocumentType:  "cpf",
			DocumentValue: "123.456.789-00",
			Address: types.Address{
				Street: "Rua das Flores 123",
				City:   "São Paulo",
				State:  "SP",
				Zip:    "01000-000",
			},
		},
		{
			Name:          "Maria Santos",
			Email:         "maria@example.com",
			Phone:         "11888888888",
			DocumentType:  "cpf",
			DocumentValue: "987.654.321-00",
			Address: types.Address{
				Street: "Avenida Central 45",
				City:   "São Paulo",
				State:  "SP",
				Zip:    "02000-000",
			},
		},
	}

	for _, b := range demoBeneficiaries {
		if err := beneficiaries.Create(ctx, b); err != nil {
			if errors.Is(err, types.ErrDuplicateContact) {
				continue
			}
			return fmt.Errorf("failed to seed beneficiary %s: %w", b.Name, err)
		}
	}

	demoDonations := []*types.Donation{
		{
			DonorName:   "Ana Costa",
			DonorEmail:  "ana@example.com",
			Type:        types.DonationTypeMoney,
			AmountCents: int64Ptr(50000),
		},
		{
			DonorName:  "Carlos Silva",
			DonorEmail: "carlos@example.com",
			Type:       types.DonationTypeItems,
			Items: []types.DonationItem{
				{Name: "Arroz 5kg", Qty: 2},
				{Name: "Feijão 2kg", Qty: 3},
			},
		},
	}

	for _, d := range demoDonations {
		if err := donations.Create(ctx, d); err != nil {
			return fmt.Errorf("failed to seed donation from %s: %w", d.DonorName, err)
		}
	}

	demoRequest := &types.Request{
		BeneficiaryID: demoBeneficiaries[0].ID,
		ContactName:   demoBeneficiaries[0].Name,
		ContactEmail:  demoBeneficiaries[0].Email,
		ContactPhone:  demoBeneficiaries[0].Phone,
		Urgency:       types.RequestUrgencyHigh,
		Items: []types.RequestItem{
			{Name: "Arroz", Qty: 1, Unit: "5kg", Category: "alimentos"},
			{Name: "Óleo", Qty: 2, Unit: "1L", Category: "alimentos"},
		},
		Description: "Cesta básica para família de quatro pessoas",
	}

	if demoRequest.BeneficiaryID != "" {
		if err := requests.Create(ctx, demoRequest); err != nil {
			return fmt.Errorf("failed to seed request: %w", err)
		}
	}

	return nil
}
