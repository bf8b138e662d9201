package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/intake"
	"github.com/recuperacasa/intake-api/internal/mail"
	"github.com/recuperacasa/intake-api/internal/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testMaxFileSize = int64(20 << 20)
	testMaxBodySize = int64(2 << 20)
)

type fakeStore struct {
	mu      sync.Mutex
	nextID  uint64
	created []form.Submission
	err     error
}

func (s *fakeStore) Create(ctx context.Context, submission form.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.nextID++
	switch m := submission.(type) {
	case *form.BudgetRequest:
		m.ID = s.nextID
	case *form.InsuranceRequest:
		m.ID = s.nextID
	case *form.StateAidRequest:
		m.ID = s.nextID
	case *form.ContractorRegistration:
		m.ID = s.nextID
	}
	s.created = append(s.created, submission)
	return nil
}

type fakeNotifier struct {
	calls int
}

func (n *fakeNotifier) Dispatch(ctx context.Context, def form.Definition, submission form.Submission) {
	n.calls++
}

type failingSender struct{}

func (failingSender) Send(ctx context.Context, subject, body string) error {
	return errors.New("relay unreachable")
}

var _ mail.Sender = failingSender{}

func definition(t *testing.T, kind form.Kind) form.Definition {
	t.Helper()
	for _, def := range form.Definitions() {
		if def.Kind == kind {
			return def
		}
	}
	t.Fatalf("definition for kind %s not registered", kind)
	return form.Definition{}
}

func newRouter(def form.Definition, store intake.Store, notifier intake.Notifier) *gin.Engine {
	pipeline := intake.NewPipeline(store, notifier)
	handler := NewIntakeHandler(def, pipeline, testMaxFileSize, testMaxBodySize)

	router := gin.New()
	router.POST(def.Path, handler.Handle)
	return router
}

type apiResponse struct {
	OK   bool   `json:"ok"`
	ID   uint64 `json:"id"`
	Erro string `json:"erro"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

type filePart struct {
	field       string
	name        string
	contentType string
	content     string
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files []filePart) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.name))
		header.Set("Content-Type", file.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMultipartSubmissionWithAttachment(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	def := definition(t, form.KindBudget)
	router := newRouter(def, store, notifier)

	pdf := strings.Repeat("p", 51200)
	req := multipartRequest(t, "/api/orcamentos",
		map[string]string{
			"name":     "Ana Silva",
			"email":    "ana@x.pt",
			"district": "Porto",
			"urgency":  "alta",
		},
		[]filePart{{field: "fotos", name: "telhado.pdf", contentType: "application/pdf", content: pdf}},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(1), resp.ID)

	require.Len(t, store.created, 1)
	stored := store.created[0].(*form.BudgetRequest)
	assert.Equal(t, "Porto", stored.District)
	assert.Equal(t, "alta", stored.Urgency)

	attachments := stored.AttachmentRecords()
	require.Len(t, attachments, 1)
	assert.Equal(t, "telhado.pdf", attachments[0].OriginalName)
	assert.Equal(t, int64(51200), attachments[0].SizeBytes)
	assert.Equal(t, "application/pdf", attachments[0].MediaType)

	assert.Equal(t, 1, notifier.calls)
}

func TestMultipartFilesKeepArrivalOrderAcrossFields(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindInsurance)
	router := newRouter(def, store, &fakeNotifier{})

	req := multipartRequest(t, "/api/seguros", nil, []filePart{
		{field: "zeta", name: "primeiro.pdf", contentType: "application/pdf", content: "a"},
		{field: "alfa", name: "segundo.jpg", contentType: "image/jpeg", content: "bb"},
		{field: "zeta", name: "terceiro.png", contentType: "image/png", content: "ccc"},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	attachments := store.created[0].(*form.InsuranceRequest).AttachmentRecords()
	require.Len(t, attachments, 3)
	assert.Equal(t, "primeiro.pdf", attachments[0].OriginalName)
	assert.Equal(t, "segundo.jpg", attachments[1].OriginalName)
	assert.Equal(t, "terceiro.png", attachments[2].OriginalName)
	assert.Equal(t, int64(3), attachments[2].SizeBytes)
}

func TestEmptyBodySubmission(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindContractor)
	router := newRouter(def, store, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/empreiteiros", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(1), resp.ID)

	stored := store.created[0].(*form.ContractorRegistration)
	assert.Equal(t, "", stored.Name)
	assert.Equal(t, "", stored.Company)
	assert.Empty(t, stored.AttachmentRecords())
}

func TestEmptyJSONBodySubmission(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindContractor)
	router := newRouter(def, store, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/empreiteiros", nil)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(1), resp.ID)

	require.Len(t, store.created, 1)
	stored := store.created[0].(*form.ContractorRegistration)
	assert.Equal(t, "", stored.Name)
	assert.Empty(t, stored.AttachmentRecords())
}

func TestJSONSubmission(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindStateAid)
	router := newRouter(def, store, &fakeNotifier{})

	body := `{"name":"Rui Costa","tax_id":"123456789","aid_type":"habitacao","years":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/apoios-estado", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	stored := store.created[0].(*form.StateAidRequest)
	assert.Equal(t, "Rui Costa", stored.Name)
	assert.Equal(t, "123456789", stored.TaxID)
	assert.Equal(t, "habitacao", stored.AidType)
	assert.Empty(t, stored.AttachmentRecords())
}

func TestURLEncodedSubmission(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindBudget)
	router := newRouter(def, store, &fakeNotifier{})

	values := url.Values{}
	values.Set("name", "Ana Silva")
	values.Set("damage_type", "inundação")

	req := httptest.NewRequest(http.MethodPost, "/api/orcamentos", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	stored := store.created[0].(*form.BudgetRequest)
	assert.Equal(t, "Ana Silva", stored.Name)
	assert.Equal(t, "inundação", stored.DamageType)
}

func TestStoreFailureReturnsInternalErrorWithoutNotification(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	def := definition(t, form.KindBudget)
	router := newRouter(def, store, notifier)

	req := multipartRequest(t, "/api/orcamentos", map[string]string{"name": "Ana"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.OK)
	assert.Equal(t, "Erro interno", resp.Erro)
	assert.Equal(t, uint64(0), resp.ID)
	assert.Equal(t, 0, notifier.calls)
}

func TestNotificationFailureStillAcknowledges(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindBudget)
	// Real dispatcher over a dead mail channel.
	router := newRouter(def, store, notify.NewDispatcher(failingSender{}))

	req := multipartRequest(t, "/api/orcamentos", map[string]string{"name": "Ana"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(1), resp.ID)
}

func TestOversizedFileRejected(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindBudget)
	pipeline := intake.NewPipeline(store, &fakeNotifier{})
	handler := NewIntakeHandler(def, pipeline, 64, testMaxBodySize)

	router := gin.New()
	router.POST(def.Path, handler.Handle)

	req := multipartRequest(t, "/api/orcamentos", nil, []filePart{
		{field: "fotos", name: "grande.bin", contentType: "application/octet-stream", content: strings.Repeat("x", 100)},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.OK)
	assert.Empty(t, store.created)
}

func TestIdenticalSubmissionsAreNotDeduplicated(t *testing.T) {
	store := &fakeStore{}
	def := definition(t, form.KindBudget)
	router := newRouter(def, store, &fakeNotifier{})

	for i := 0; i < 2; i++ {
		req := multipartRequest(t, "/api/orcamentos", map[string]string{"name": "Ana Silva"}, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.Equal(t, uint64(i+1), resp.ID)
	}

	assert.Len(t, store.created, 2)
}
