package query

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportBeneficiariesCSV(t *testing.T) {
	ctx := context.Background()
	beneficiaries := store.NewMemoryBeneficiaryStore()
	service := NewService(beneficiaries, store.NewMemoryDonationStore(), store.NewMemoryRequestStore())

	tricky := &types.Beneficiary{
		Name:  `Silva, João "Jr"`,
		Email: "jr@example.com",
		Phone: "11999999990",
	}
	require.NoError(t, beneficiaries.Create(ctx, tricky))
	require.NoError(t, beneficiaries.Create(ctx, &types.Beneficiary{
		Name: "Maria Santos", Email: "maria@example.com", Phone: "11888888888",
	}))

	var buf bytes.Buffer
	require.NoError(t, service.ExportBeneficiariesCSV(ctx, &buf, types.ListFilter{}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, beneficiaryCSVHeader, rows[0])

	// csv escaping must round-trip commas and quotes in fields
	assert.Equal(t, tricky.ID, rows[1][0])
	assert.Equal(t, `Silva, João "Jr"`, rows[1][1])
	assert.Equal(t, "pending", rows[1][10])
}

func TestExportIgnoresPagination(t *testing.T) {
	ctx := context.Background()
	service, _ := seedService(t, 25)

	var buf bytes.Buffer
	require.NoError(t, service.ExportBeneficiariesCSV(ctx, &buf, types.ListFilter{Page: 2, PageSize: 5}))

	rows := parseCSV(t, &buf)
	assert.Len(t, rows, 26, "export returns every match regardless of pagination")
}

func TestExportSharesFilterSemantics(t *testing.T) {
	ctx := context.Background()
	service, beneficiaries := seedService(t, 6)

	listed, err := service.Beneficiaries(ctx, types.ListFilter{})
	require.NoError(t, err)

	for _, b := range listed.Items[:2] {
		require.NoError(t, beneficiaries.UpdateStatus(
			ctx, b.ID,
			[]types.BeneficiaryStatus{types.BeneficiaryStatusPending},
			types.BeneficiaryStatusVerified,
			nil,
		))
	}

	var buf bytes.Buffer
	require.NoError(t, service.ExportBeneficiariesCSV(ctx, &buf, types.ListFilter{Status: "verified"}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.Equal(t, "verified", row[10])
	}
}

func TestExportDonationsCSV(t *testing.T) {
	ctx := context.Background()
	donations := store.NewMemoryDonationStore()
	service := NewService(store.NewMemoryBeneficiaryStore(), donations, store.NewMemoryRequestStore())

	amount := int64(50000)
	require.NoError(t, donations.Create(ctx, &types.Donation{
		DonorName:   "Ana Costa",
		Type:        types.DonationTypeMoney,
		AmountCents: &amount,
	}))
	require.NoError(t, donations.Create(ctx, &types.Donation{
		DonorName: "Carlos Silva",
		Type:      types.DonationTypeItems,
		Items: []types.DonationItem{
			{Name: "Arroz 5kg", Qty: 2},
			{Name: "Feijão 2kg", Qty: 3},
		},
	}))

	var buf bytes.Buffer
	require.NoError(t, service.ExportDonationsCSV(ctx, &buf, types.ListFilter{}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, donationCSVHeader, rows[0])

	assert.Equal(t, "50000", rows[1][4])
	assert.Empty(t, rows[1][5])

	assert.Empty(t, rows[2][4])
	assert.Equal(t, "Arroz 5kg x2; Feijão 2kg x3", rows[2][5])
}

func TestExportRequestsCSV(t *testing.T) {
	ctx := context.Background()
	requests := store.NewMemoryRequestStore()
	service := NewService(store.NewMemoryBeneficiaryStore(), store.NewMemoryDonationStore(), requests)

	require.NoError(t, requests.Create(ctx, &types.Request{
		BeneficiaryID: "b1",
		ContactName:   "João Silva",
		Urgency:       types.RequestUrgencyHigh,
		Items: []types.RequestItem{
			{Name: "Arroz", Qty: 1, Unit: "5kg", Category: "alimentos"},
			{Name: "Óleo", Qty: 2, Unit: "1L", Category: "alimentos"},
		},
		Description: "Cesta básica",
	}))

	var buf bytes.Buffer
	require.NoError(t, service.ExportRequestsCSV(ctx, &buf, types.ListFilter{}))

	rows := parseCSV(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, requestCSVHeader, rows[0])
	assert.Equal(t, "high", rows[1][5])
	assert.Equal(t, "Arroz x1 5kg; Óleo x2 1L", rows[1][6])
}
