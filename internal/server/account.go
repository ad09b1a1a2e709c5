package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"debtportal/pkg/types"

	"golang.org/x/sync/errgroup"
)

type debtCaseRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type caseAttachmentsRequest struct {
	CaseID string `json:"case_id"`
}

type attachmentURLRequest struct {
	StoragePath string `json:"storage_path"`
}

type attachmentURLResponse struct {
	SignedURL string `json:"signed_url"`
	ExpiresIn int64  `json:"expires_in"`
}

// fetchError carries the user-facing message for the stage that failed
// while keeping the wrapped cause for the log.
type fetchError struct {
	userMsg string
	err     error
}

func (e *fetchError) Error() string { return e.err.Error() }
func (e *fetchError) Unwrap() error { return e.err }

// handleDebtCase resolves a phone number to the debtor's full account
// view: the case, the debtor profile, payment history (newest first),
// and attachment records. Absence at any stage ends the chain with a
// 404; a store fault ends it with a 500. The phone number is trusted
// as presented; ownership verification happens upstream.
func (s *Service) handleDebtCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req debtCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Phone number is required")
		return
	}
	if req.PhoneNumber == "" {
		s.respondError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	debtor, err := s.debtors.DebtorByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, types.ErrDebtorNotFound) {
			s.respondError(w, http.StatusNotFound, "Debtor not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch debtor")
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch debtor information")
		return
	}

	c, err := s.cases.CaseByDebtorID(ctx, debtor.ID)
	if err != nil {
		if errors.Is(err, types.ErrCaseNotFound) {
			s.respondError(w, http.StatusNotFound, "No case found for this debtor")
			return
		}
		s.logger.WithError(err).Error("failed to fetch case")
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch case information")
		return
	}

	// Attachments and payments only depend on the case id, so both
	// fetches run at once.
	var (
		files    []types.CaseAttachment
		payments []types.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		files, err = s.attachments.AttachmentsByCaseID(gctx, c.ID)
		if err != nil {
			return &fetchError{
				userMsg: "Failed to fetch case attachments",
				err:     fmt.Errorf("failed to fetch attachments for case %s: %w", c.ID, err),
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = s.payments.PaymentsByCaseID(gctx, c.ID)
		if err != nil {
			return &fetchError{
				userMsg: "Failed to fetch payment history",
				err:     fmt.Errorf("failed to fetch payments for case %s: %w", c.ID, err),
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		msg := "An unexpected error occurred"
		var fe *fetchError
		if errors.As(err, &fe) {
			msg = fe.userMsg
		}
		s.logger.WithError(err).Error("failed to assemble account view")
		s.respondError(w, http.StatusInternalServerError, msg)
		return
	}

	s.respondJSON(w, http.StatusOK, types.CaseAccount{
		Case:     *c,
		Debtor:   debtor,
		Payments: payments,
		Files:    files,
	})
}

// handleCaseAttachments lists the attachment records for a case. A
// case without documents yields an empty array, not an error.
func (s *Service) handleCaseAttachments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req caseAttachmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Case ID is required")
		return
	}
	if req.CaseID == "" {
		s.respondError(w, http.StatusBadRequest, "Case ID is required")
		return
	}

	attachments, err := s.attachments.AttachmentsByCaseID(ctx, req.CaseID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch attachments")
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch case attachments")
		return
	}

	s.respondJSON(w, http.StatusOK, attachments)
}

// handleAttachmentURL exchanges a storage path for a time-limited
// download URL issued by object storage.
func (s *Service) handleAttachmentURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attachmentURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Storage path is required")
		return
	}
	if req.StoragePath == "" {
		s.respondError(w, http.StatusBadRequest, "Storage path is required")
		return
	}

	signedURL, ttl, err := s.signer.SignedURL(ctx, req.StoragePath)
	if err != nil {
		s.logger.WithError(err).Error("failed to sign attachment url")
		s.respondError(w, http.StatusInternalServerError, "Failed to create signed url")
		return
	}

	s.respondJSON(w, http.StatusOK, attachmentURLResponse{
		SignedURL: signedURL,
		ExpiresIn: int64(ttl.Seconds()),
	})
}
