package server

import (
	"github.com/alexedwards/flow"
	"net/http"

	"adra/pkg/types"
)

type registerBeneficiaryRequest struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	DocumentType  string        `json:"documentType"`
	DocumentValue string        `json:"documentValue"`
	Address       types.Address `json:"address"`
}

func (s *Service) handleRegisterBeneficiary(w http.ResponseWriter, r *http.Request) {
	var body registerBeneficiaryRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	beneficiary := &types.Beneficiary{
		Name:          body.Name,
		Email:         body.Email,
		Phone:         body.Phone,
		DocumentType:  body.DocumentType,
		DocumentValue: body.DocumentValue,
		Address:       body.Address,
	}

	if err := s.intake.RegisterBeneficiary(r.Context(), beneficiary); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, beneficiary)
}

type beneficiaryStatusResponse struct {
	ID              string                  `json:"id"`
	Status          types.BeneficiaryStatus `json:"status"`
	RejectionReason *string                 `json:"rejectionReason,omitempty"`
}

// handleBeneficiaryStatus backs the registrant's waiting page: it exposes
// only the status and, when rejected, the reason.
func (s *Service) handleBeneficiaryStatus(w http.ResponseWriter, r *http.Request) {
	beneficiary, err := s.intake.Beneficiary(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, beneficiaryStatusResponse{
		ID:              beneficiary.ID,
		Status:          beneficiary.Status,
		RejectionReason: beneficiary.RejectionReason,
	})
}

type verifyCodeRequest struct {
	Code string `json:"code"`
}

func (s *Service) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var body verifyCodeRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	id := flow.Param(r.Context(), "id")
	if err := s.gate.ValidateCode(r.Context(), id, body.Code); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"status": types.BeneficiaryStatusVerified,
	})
}

func (s *Service) handleResendCode(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")
	if err := s.gate.ResendCode(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type createRequestRequest struct {
	BeneficiaryID string               `json:"beneficiaryId"`
	ContactName   string               `json:"contactName"`
	ContactEmail  string               `json:"contactEmail"`
	ContactPhone  string               `json:"contactPhone"`
	Address       types.Address        `json:"address"`
	Urgency       types.RequestUrgency `json:"urgency"`
	Items         []types.RequestItem  `json:"items"`
	Description   string               `json:"description"`
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var body createRequestRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	request := &types.Request{
		BeneficiaryID: body.BeneficiaryID,
		ContactName:   body.ContactName,
		ContactEmail:  body.ContactEmail,
		ContactPhone:  body.ContactPhone,
		Address:       body.Address,
		Urgency:       body.Urgency,
		Items:         body.Items,
		Description:   body.Description,
	}

	if err := s.intake.SubmitRequest(r.Context(), request); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, request)
}

type createDonationRequest struct {
	DonorName   string               `json:"donorName"`
	DonorEmail  string               `json:"donorEmail"`
	Type        types.DonationType   `json:"type"`
	AmountCents *int64               `json:"amountCents"`
	Items       []types.DonationItem `json:"items"`
	Address     types.Address        `json:"address"`
}

func (s *Service) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	var body createDonationRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	donation := &types.Donation{
		DonorName:   body.DonorName,
		DonorEmail:  body.DonorEmail,
		Type:        body.Type,
		AmountCents: body.AmountCents,
		Items:       body.Items,
		Address:     body.Address,
	}

	if err := s.intake.SubmitDonation(r.Context(), donation); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, donation)
}
