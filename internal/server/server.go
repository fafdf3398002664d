package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"adra/internal/query"
	"adra/internal/session"
	"adra/internal/storage"
	"adra/internal/workflow"
	"adra/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var queryDecoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	guard   *session.Guard
	gate    *workflow.Gate
	intake  *workflow.Intake
	review  *workflow.Review
	queries *query.Service

	// archiver is nil when export archival is not configured.
	archiver *storage.ExportArchiver

	cookie *securecookie.SecureCookie
	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	guard *session.Guard,
	gate *workflow.Gate,
	intake *workflow.Intake,
	review *workflow.Review,
	queries *query.Service,
	archiver *storage.ExportArchiver,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:   logger,
		config:   config,
		guard:    guard,
		gate:     gate,
		intake:   intake,
		review:   review,
		queries:  queries,
		archiver: archiver,
		cookie:   securecookie.New(hashKey, blockKey),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// Registrant-facing surface
	r.HandleFunc("/beneficiaries", s.handleRegisterBeneficiary, http.MethodPost)
	r.HandleFunc("/beneficiaries/:id/status", s.handleBeneficiaryStatus, http.MethodGet)
	r.HandleFunc("/beneficiaries/:id/verify", s.handleVerifyCode, http.MethodPost)
	r.HandleFunc("/beneficiaries/:id/resend-code", s.handleResendCode, http.MethodPost)
	r.HandleFunc("/requests", s.handleCreateRequest, http.MethodPost)
	r.HandleFunc("/donations", s.handleCreateDonation, http.MethodPost)

	r.HandleFunc("/admin/login", s.handleAdminLogin, http.MethodPost)
	r.HandleFunc("/admin/logout", s.handleAdminLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		// Export routes are declared before the :id routes; flow matches in
		// declaration order.
		r.HandleFunc("/admin/beneficiaries/export.csv", s.handleExportBeneficiaries, http.MethodGet)
		r.HandleFunc("/admin/beneficiaries", s.handleListBeneficiaries, http.MethodGet)
		r.HandleFunc("/admin/beneficiaries/:id", s.handleGetBeneficiary, http.MethodGet)
		r.HandleFunc("/admin/beneficiaries/:id/validate", s.handleValidateBeneficiary, http.MethodPatch)

		r.HandleFunc("/admin/donations/export.csv", s.handleExportDonations, http.MethodGet)
		r.HandleFunc("/admin/donations", s.handleListDonations, http.MethodGet)
		r.HandleFunc("/admin/donations/:id", s.handleGetDonation, http.MethodGet)
		r.HandleFunc("/admin/donations/:id", s.handleUpdateDonation, http.MethodPatch)

		r.HandleFunc("/admin/requests/export.csv", s.handleExportRequests, http.MethodGet)
		r.HandleFunc("/admin/requests", s.handleListRequests, http.MethodGet)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
