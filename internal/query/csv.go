package query

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"adra/pkg/types"
)

// CSV exports share filter semantics with the paginated queries but return
// every match. Headers are fixed per entity kind; quoting follows standard
// CSV escaping via encoding/csv.

var beneficiaryCSVHeader = []string{
	"id", "name", "email", "phone", "document_type", "document_value",
	"street", "city", "state", "zip", "status", "rejection_reason", "created_at",
}

var donationCSVHeader = []string{
	"id", "donor_name", "donor_email", "type", "amount_cents", "items", "status", "created_at",
}

var requestCSVHeader = []string{
	"id", "beneficiary_id", "contact_name", "contact_email", "contact_phone",
	"urgency", "items", "description", "status", "created_at",
}

func (s *Service) ExportBeneficiariesCSV(ctx context.Context, w io.Writer, filter types.ListFilter) error {
	items, _, err := s.beneficiaries.List(ctx, filter.Unpaginated())
	if err != nil {
		return fmt.Errorf("failed to export beneficiaries: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(beneficiaryCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, b := range items {
		reason := ""
		if b.RejectionReason != nil {
			reason = *b.RejectionReason
		}
		record := []string{
			b.ID, b.Name, b.Email, b.Phone, b.DocumentType, b.DocumentValue,
			b.Street, b.City, b.State, b.Zip, string(b.Status), reason,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *Service) ExportDonationsCSV(ctx context.Context, w io.Writer, filter types.ListFilter) error {
	items, _, err := s.donations.List(ctx, filter.Unpaginated())
	if err != nil {
		return fmt.Errorf("failed to export donations: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(donationCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, d := range items {
		amount := ""
		if d.AmountCents != nil {
			amount = strconv.FormatInt(*d.AmountCents, 10)
		}
		record := []string{
			d.ID, d.DonorName, d.DonorEmail, string(d.Type), amount,
			donationItemsColumn(d.Items), string(d.Status),
			d.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (s *Service) ExportRequestsCSV(ctx context.Context, w io.Writer, filter types.ListFilter) error {
	items, _, err := s.requests.List(ctx, filter.Unpaginated())
	if err != nil {
		return fmt.Errorf("failed to export requests: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(requestCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range items {
		record := []string{
			r.ID, r.BeneficiaryID, r.ContactName, r.ContactEmail, r.ContactPhone,
			string(r.Urgency), requestItemsColumn(r.Items), r.Description,
			string(r.Status), r.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func donationItemsColumn(items []types.DonationItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Qty))
	}
	return strings.Join(parts, "; ")
}

func requestItemsColumn(items []types.RequestItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d %s", item.Name, item.Qty, item.Unit))
	}
	return strings.Join(parts, "; ")
}
