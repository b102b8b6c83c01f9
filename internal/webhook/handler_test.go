// AngelaMos | 2026
// handler_test.go

package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	err    error
	called bool
}

func (s *stubVerifier) Verify(_ []byte, _ http.Header) error {
	s.called = true
	return s.err
}

type syncCall struct {
	op       string
	id       string
	email    string
	fullName string
	phone    *string
}

type fakeSyncer struct {
	calls []syncCall
	err   error
}

func (f *fakeSyncer) SyncCreated(
	_ context.Context,
	id, email, fullName string,
	phone *string,
) error {
	f.calls = append(f.calls, syncCall{"created", id, email, fullName, phone})
	return f.err
}

func (f *fakeSyncer) SyncUpdated(
	_ context.Context,
	id, email, fullName string,
	phone *string,
) error {
	f.calls = append(f.calls, syncCall{"updated", id, email, fullName, phone})
	return f.err
}

func (f *fakeSyncer) SyncDeleted(_ context.Context, id string) error {
	f.calls = append(f.calls, syncCall{op: "deleted", id: id})
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedRequest(body string) *http.Request {
	req := httptest.NewRequest(
		http.MethodPost,
		"/webhooks/identity",
		strings.NewReader(body),
	)
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", "v1,c2lnbmF0dXJl")
	return req
}

const createdEvent = `{
	"type": "user.created",
	"data": {
		"id": "usr_1",
		"first_name": "Jane",
		"last_name": "Tenant",
		"email_addresses": [
			{"id": "em_2", "email_address": "secondary@example.com"},
			{"id": "em_1", "email_address": "jane@example.com"}
		],
		"primary_email_address_id": "em_1",
		"phone_numbers": [
			{"id": "ph_1", "phone_number": "+254700000001"}
		],
		"primary_phone_number_id": "ph_1"
	}
}`

func TestHandleIdentityEventMissingHeaders(t *testing.T) {
	verifier := &stubVerifier{}
	syncer := &fakeSyncer{}
	h := NewHandler(verifier, syncer, testLogger())

	req := httptest.NewRequest(
		http.MethodPost,
		"/webhooks/identity",
		strings.NewReader(createdEvent),
	)
	rec := httptest.NewRecorder()

	h.HandleIdentityEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, verifier.called, "must reject before signature check")
	assert.Empty(t, syncer.calls, "must reject before touching storage")
}

func TestHandleIdentityEventInvalidSignature(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("signature mismatch")}
	syncer := &fakeSyncer{}
	h := NewHandler(verifier, syncer, testLogger())

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, signedRequest(createdEvent))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, syncer.calls)
}

func TestHandleIdentityEventCreatedDispatch(t *testing.T) {
	verifier := &stubVerifier{}
	syncer := &fakeSyncer{}
	h := NewHandler(verifier, syncer, testLogger())

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, signedRequest(createdEvent))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, syncer.calls, 1)

	call := syncer.calls[0]
	assert.Equal(t, "created", call.op)
	assert.Equal(t, "usr_1", call.id)
	assert.Equal(t, "jane@example.com", call.email,
		"must pick the designated primary, not the first entry")
	assert.Equal(t, "Jane Tenant", call.fullName)
	require.NotNil(t, call.phone)
	assert.Equal(t, "+254700000001", *call.phone)
}

func TestHandleIdentityEventDeletedDispatch(t *testing.T) {
	verifier := &stubVerifier{}
	syncer := &fakeSyncer{}
	h := NewHandler(verifier, syncer, testLogger())

	body := `{"type": "user.deleted", "data": {"id": "usr_9"}}`
	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, signedRequest(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, syncer.calls, 1)
	assert.Equal(t, "deleted", syncer.calls[0].op)
	assert.Equal(t, "usr_9", syncer.calls[0].id)
}

func TestHandleIdentityEventUnknownTypeAcked(t *testing.T) {
	verifier := &stubVerifier{}
	syncer := &fakeSyncer{}
	h := NewHandler(verifier, syncer, testLogger())

	body := `{"type": "session.created", "data": {"id": "sess_1"}}`
	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, signedRequest(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, syncer.calls)
	assert.Contains(t, rec.Body.String(), `"handled":false`)
}

func TestHandleIdentityEventSyncFailure(t *testing.T) {
	verifier := &stubVerifier{}
	syncer := &fakeSyncer{err: errors.New("db down")}
	h := NewHandler(verifier, syncer, testLogger())

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, signedRequest(createdEvent))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPrimaryEmailFallsBackToFirst(t *testing.T) {
	d := identityUserData{
		EmailAddresses: []emailAddress{
			{ID: "em_1", EmailAddress: "first@example.com"},
			{ID: "em_2", EmailAddress: "second@example.com"},
		},
		PrimaryEmailAddressID: "em_missing",
	}
	assert.Equal(t, "first@example.com", d.primaryEmail())
}
