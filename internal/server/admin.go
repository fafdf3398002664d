package server

import (
	"bytes"
	"context"
	"fmt"
	"github.com/alexedwards/flow"
	"net/http"

	"adra/pkg/types"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginResponse struct {
	OK        bool   `json:"ok"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func (s *Service) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body adminLoginRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	adminSession, err := s.guard.Authenticate(r.Context(), body.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	encoded, err := s.cookie.Encode(s.config.CookieName, adminSession.Token)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		s.respondError(w, fmt.Errorf("encode session cookie: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionTTLSec,
		Path:     "/",
	})

	s.respondJSON(w, http.StatusOK, adminLoginResponse{
		OK:        true,
		Token:     adminSession.Token,
		ExpiresAt: adminSession.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *Service) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	// Logout does not require a valid session; revoking is idempotent.
	token, err := s.sessionToken(r)
	if err == nil {
		if err := s.guard.Revoke(r.Context(), token); err != nil {
			s.logger.WithError(err).Warn("failed to revoke session")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})

	s.respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Service) handleListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	page, err := s.queries.Beneficiaries(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, page)
}

func (s *Service) handleGetBeneficiary(w http.ResponseWriter, r *http.Request) {
	beneficiary, err := s.intake.Beneficiary(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, beneficiary)
}

type validateBeneficiaryRequest struct {
	Action string `json:"action"` // approve | reject
	Reason string `json:"reason"`
}

func (s *Service) handleValidateBeneficiary(w http.ResponseWriter, r *http.Request) {
	var body validateBeneficiaryRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	id := flow.Param(r.Context(), "id")

	var err error
	switch body.Action {
	case "approve":
		err = s.review.Approve(r.Context(), id)
	case "reject":
		err = s.review.Reject(r.Context(), id, body.Reason)
	default:
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown action %q", body.Action)})
		return
	}
	if err != nil {
		s.respondError(w, err)
		return
	}

	beneficiary, err := s.intake.Beneficiary(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, beneficiary)
}

func (s *Service) handleListDonations(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	page, err := s.queries.Donations(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, page)
}

func (s *Service) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	donation, err := s.review.Donation(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, donation)
}

type updateDonationRequest struct {
	Status types.DonationStatus `json:"status"`
}

func (s *Service) handleUpdateDonation(w http.ResponseWriter, r *http.Request) {
	var body updateDonationRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	id := flow.Param(r.Context(), "id")
	if err := s.review.UpdateDonationStatus(r.Context(), id, body.Status); err != nil {
		s.respondError(w, err)
		return
	}

	donation, err := s.review.Donation(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, donation)
}

func (s *Service) handleListRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	page, err := s.queries.Requests(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, page)
}

func (s *Service) handleExportBeneficiaries(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	s.serveExport(w, r.Context(), "beneficiaries", func(buf *bytes.Buffer) error {
		return s.queries.ExportBeneficiariesCSV(r.Context(), buf, filter)
	})
}

func (s *Service) handleExportDonations(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	s.serveExport(w, r.Context(), "donations", func(buf *bytes.Buffer) error {
		return s.queries.ExportDonationsCSV(r.Context(), buf, filter)
	})
}

func (s *Service) handleExportRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.decodeFilter(w, r)
	if !ok {
		return
	}

	s.serveExport(w, r.Context(), "requests", func(buf *bytes.Buffer) error {
		return s.queries.ExportRequestsCSV(r.Context(), buf, filter)
	})
}

// serveExport buffers the CSV so a mid-export failure yields a clean error
// response instead of a truncated download, then archives a copy when a
// bucket is configured.
func (s *Service) serveExport(w http.ResponseWriter, ctx context.Context, kind string, write func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.respondError(w, err)
		return
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, kind, buf.Bytes())
		if err != nil {
			s.logger.WithError(err).WithField("kind", kind).Warn("failed to archive export")
		} else {
			s.logger.WithField("key", key).Info("export archived")
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", kind))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
