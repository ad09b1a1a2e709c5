package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"debtportal/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

// Store dependencies are expressed as the handler-side slices of the
// repositories so the HTTP layer can be exercised without a database.

type DebtorStore interface {
	DebtorByPhoneNumber(ctx context.Context, phoneNumber string) (*types.Debtor, error)
}

type CaseStore interface {
	CaseByDebtorID(ctx context.Context, debtorID string) (*types.Case, error)
}

type AttachmentStore interface {
	AttachmentsByCaseID(ctx context.Context, caseID string) ([]types.CaseAttachment, error)
}

type PaymentStore interface {
	PaymentsByCaseID(ctx context.Context, caseID string) ([]types.Payment, error)
}

// URLSigner issues a time-limited download URL for a storage path.
type URLSigner interface {
	SignedURL(ctx context.Context, storagePath string) (string, time.Duration, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	debtors     DebtorStore
	cases       CaseStore
	attachments AttachmentStore
	payments    PaymentStore
	signer      URLSigner

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	debtors DebtorStore,
	cases CaseStore,
	attachments AttachmentStore,
	payments PaymentStore,
	signer URLSigner,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		debtors:     debtors,
		cases:       cases,
		attachments: attachments,
		payments:    payments,
		signer:      signer,

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

// Handler exposes the router for in-process callers.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.RecoverMiddleware)
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.CORSMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// OPTIONS is routed so the CORS middleware can answer preflights.
	r.HandleFunc("/api/debt-case", s.handleDebtCase, http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/case-attachments", s.handleCaseAttachments, http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/attachment-url", s.handleAttachmentURL, http.MethodPost, http.MethodOptions)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
