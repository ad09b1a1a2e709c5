package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"debtportal/internal/utils"
	"debtportal/pkg/types"

	"github.com/sirupsen/logrus"
)

type stubDebtorStore struct {
	debtor *types.Debtor
	err    error
	calls  int
}

func (s *stubDebtorStore) DebtorByPhoneNumber(_ context.Context, _ string) (*types.Debtor, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.debtor == nil {
		return nil, types.ErrDebtorNotFound
	}
	return s.debtor, nil
}

type stubCaseStore struct {
	c   *types.Case
	err error
}

func (s *stubCaseStore) CaseByDebtorID(_ context.Context, _ string) (*types.Case, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.c == nil {
		return nil, types.ErrCaseNotFound
	}
	return s.c, nil
}

type stubAttachmentStore struct {
	attachments []types.CaseAttachment
	err         error
	calls       int
}

func (s *stubAttachmentStore) AttachmentsByCaseID(_ context.Context, _ string) ([]types.CaseAttachment, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.attachments, nil
}

type stubPaymentStore struct {
	payments []types.Payment
	err      error
}

func (s *stubPaymentStore) PaymentsByCaseID(_ context.Context, _ string) ([]types.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payments, nil
}

type stubSigner struct {
	url string
	ttl time.Duration
	err error
}

func (s *stubSigner) SignedURL(_ context.Context, _ string) (string, time.Duration, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	return s.url, s.ttl, nil
}

func newTestService(
	t *testing.T,
	debtors DebtorStore,
	cases CaseStore,
	attachments AttachmentStore,
	payments PaymentStore,
	signer URLSigner,
) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &types.Config{
		ServerPort:        8080,
		CORSAllowedOrigin: "*",
	}

	svc, err := New(cfg, logger, debtors, cases, attachments, payments, signer)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return svc
}

func doRequest(t *testing.T, svc *Service, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func sampleDebtor() *types.Debtor {
	return &types.Debtor{
		ID:                 "debtor-1",
		FirstName:          "Anna",
		LastName:           "Kowalska",
		PhoneNumber:        utils.StringPtr("+48123456789"),
		TotalDebtAmount:    4500,
		TotalDebtRemaining: 3000,
	}
}

func sampleCase() *types.Case {
	return &types.Case{
		ID:            "case-1",
		DebtorID:      utils.StringPtr("debtor-1"),
		CaseNumber:    "C-1001",
		CreditorName:  "Vistula Bank S.A.",
		Currency:      "PLN",
		DebtAmount:    4500,
		DebtRemaining: 3000,
		DueDate:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Priority:      types.CasePriorityHigh,
		Status:        types.CaseStatusActive,
	}
}

func TestDebtCaseMissingPhoneNumber(t *testing.T) {
	debtors := &stubDebtorStore{}
	svc := newTestService(t, debtors, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	for _, body := range [][]byte{[]byte(`{}`), []byte(`{"phone_number":""}`), nil} {
		rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
		if got, want := errorMessage(t, rec), "Phone number is required"; got != want {
			t.Errorf("body %q: error = %q, want %q", body, got, want)
		}
	}

	if debtors.calls != 0 {
		t.Errorf("debtor store queried %d times for invalid input, want 0", debtors.calls)
	}
}

func TestDebtCaseDebtorNotFound(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48000000000"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got, want := errorMessage(t, rec), "Debtor not found"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDebtCaseNoCaseForDebtor(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{debtor: sampleDebtor()}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48123456789"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got, want := errorMessage(t, rec), "No case found for this debtor"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDebtCaseDebtorStoreFault(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{err: errors.New("connection reset")}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48123456789"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got, want := errorMessage(t, rec), "Failed to fetch debtor information"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDebtCasePaymentStoreFault(t *testing.T) {
	svc := newTestService(t,
		&stubDebtorStore{debtor: sampleDebtor()},
		&stubCaseStore{c: sampleCase()},
		&stubAttachmentStore{},
		&stubPaymentStore{err: errors.New("query timeout")},
		&stubSigner{},
	)

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48123456789"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got, want := errorMessage(t, rec), "Failed to fetch payment history"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDebtCaseAttachmentStoreFault(t *testing.T) {
	svc := newTestService(t,
		&stubDebtorStore{debtor: sampleDebtor()},
		&stubCaseStore{c: sampleCase()},
		&stubAttachmentStore{err: errors.New("query timeout")},
		&stubPaymentStore{},
		&stubSigner{},
	)

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48123456789"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got, want := errorMessage(t, rec), "Failed to fetch case attachments"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDebtCaseComposedResponse(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Store contract: newest first.
	payments := []types.Payment{
		{ID: "pay-3", AmountReceived: 300, Currency: "PLN", Status: types.PaymentStatusCompleted, CreatedAt: t3},
		{ID: "pay-2", AmountReceived: 200, Currency: "PLN", Status: types.PaymentStatusCompleted, CreatedAt: t2},
		{ID: "pay-1", AmountReceived: 100, Currency: "PLN", Status: types.PaymentStatusRefunded, CreatedAt: t1},
	}
	attachments := []types.CaseAttachment{
		{ID: "att-1", CaseID: utils.StringPtr("case-1"), FileName: "loan-agreement.pdf", StoragePath: "cases/case-1/loan-agreement.pdf"},
	}

	svc := newTestService(t,
		&stubDebtorStore{debtor: sampleDebtor()},
		&stubCaseStore{c: sampleCase()},
		&stubAttachmentStore{attachments: attachments},
		&stubPaymentStore{payments: payments},
		&stubSigner{},
	)

	rec := doRequest(t, svc, http.MethodPost, "/api/debt-case", []byte(`{"phone_number":"+48123456789"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got["case_number"] != "C-1001" {
		t.Errorf("case_number = %v, want C-1001", got["case_number"])
	}
	if got["debt_remaining"] != 3000.0 {
		t.Errorf("debt_remaining = %v, want 3000", got["debt_remaining"])
	}
	if got["status"] != "ACTIVE" {
		t.Errorf("status = %v, want ACTIVE", got["status"])
	}

	debtor, ok := got["debtor"].(map[string]any)
	if !ok {
		t.Fatalf("debtor missing or not an object: %v", got["debtor"])
	}
	if debtor["first_name"] != "Anna" {
		t.Errorf("debtor.first_name = %v, want Anna", debtor["first_name"])
	}

	gotPayments, ok := got["payments"].([]any)
	if !ok {
		t.Fatalf("payments missing or not an array: %v", got["payments"])
	}
	wantOrder := []string{"pay-3", "pay-2", "pay-1"}
	if len(gotPayments) != len(wantOrder) {
		t.Fatalf("len(payments) = %d, want %d", len(gotPayments), len(wantOrder))
	}
	for i, want := range wantOrder {
		p := gotPayments[i].(map[string]any)
		if p["id"] != want {
			t.Errorf("payments[%d].id = %v, want %v", i, p["id"], want)
		}
	}

	files, ok := got["files"].([]any)
	if !ok {
		t.Fatalf("files missing or not an array: %v", got["files"])
	}
	if len(files) != 1 {
		t.Errorf("len(files) = %d, want 1", len(files))
	}
}

func TestCaseAttachmentsMissingCaseID(t *testing.T) {
	attachments := &stubAttachmentStore{}
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, attachments, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/case-attachments", []byte(`{}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got, want := errorMessage(t, rec), "Case ID is required"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if attachments.calls != 0 {
		t.Errorf("attachment store queried %d times for invalid input, want 0", attachments.calls)
	}
}

func TestCaseAttachmentsEmptyIsArray(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{attachments: []types.CaseAttachment{}}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/case-attachments", []byte(`{"case_id":"case-1"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(body, []byte("[]")) {
		t.Errorf("body = %s, want []", body)
	}
}

func TestCaseAttachmentsStoreFault(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{err: errors.New("boom")}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/case-attachments", []byte(`{"case_id":"case-1"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got, want := errorMessage(t, rec), "Failed to fetch case attachments"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestAttachmentURL(t *testing.T) {
	signer := &stubSigner{url: "https://storage.example/signed/abc", ttl: time.Hour}
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, signer)

	rec := doRequest(t, svc, http.MethodPost, "/api/attachment-url", []byte(`{"storage_path":"cases/case-1/loan-agreement.pdf"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got attachmentURLResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.SignedURL != signer.url {
		t.Errorf("signed_url = %q, want %q", got.SignedURL, signer.url)
	}
	if got.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", got.ExpiresIn)
	}
}

func TestAttachmentURLMissingPath(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodPost, "/api/attachment-url", []byte(`{}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got, want := errorMessage(t, rec), "Storage path is required"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestCORSPreflight(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodOptions, "/api/debt-case", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("Access-Control-Allow-Headers = %q", got)
	}
}

func TestHealthz(t *testing.T) {
	svc := newTestService(t, &stubDebtorStore{}, &stubCaseStore{}, &stubAttachmentStore{}, &stubPaymentStore{}, &stubSigner{})

	rec := doRequest(t, svc, http.MethodGet, "/healthz", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}
