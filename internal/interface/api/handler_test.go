package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/internal/usecase"
	"flight-intent-service/mocks"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testDeps struct {
	resolver  *mocks.MockResolver
	processor *mocks.MockProcessor
	logs      *mocks.MockBookingLogRepo
}

func setupRouter(t *testing.T, checks map[string]HealthCheck, withLogs bool) (*gin.Engine, testDeps) {
	t.Helper()
	deps := testDeps{
		resolver:  new(mocks.MockResolver),
		processor: new(mocks.MockProcessor),
		logs:      new(mocks.MockBookingLogRepo),
	}
	var logs repository.BookingLogRepository
	if withLogs {
		logs = deps.logs
	}
	parser := intent.NewParser(nil, intent.PolicyStrict, logger.NewNopLogger())
	h := NewHandler(parser, deps.resolver, deps.processor, logs, checks, logger.NewNopLogger())
	return NewRouter(h, prometheus.NewRegistry(), logger.NewNopLogger()), deps
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	resp := APIResponse{Data: data}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func str(s string) *string { return &s }

func TestParse_CompleteMessage(t *testing.T) {
	r, _ := setupRouter(t, nil, true)

	w := doJSON(r, http.MethodPost, "/v1/parse", MessageRequest{
		Message: "Billete de Quito a Madrid con Iberia para el 15 de agosto",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data ParseResponse
	resp := decode(t, w, &data)
	assert.True(t, resp.Success)
	assert.True(t, data.Valid)
	assert.Empty(t, data.MissingFields)
	assert.Equal(t, str("Quito"), data.Intent.Origin)
	assert.Equal(t, str("Madrid"), data.Intent.Destination)
	assert.Equal(t, str("Iberia"), data.Intent.Airline)
	assert.Equal(t, str("15 de agosto"), data.Intent.DateExpression)
}

func TestParse_MissingFieldsGivePrompts(t *testing.T) {
	r, _ := setupRouter(t, nil, true)

	w := doJSON(r, http.MethodPost, "/v1/parse", MessageRequest{Message: "quiero viajar"})
	require.Equal(t, http.StatusOK, w.Code)

	var data ParseResponse
	decode(t, w, &data)
	assert.False(t, data.Valid)
	assert.Equal(t, []string{"origin", "destination", "date", "airline"}, data.MissingFields)
	assert.Len(t, data.Prompts, 4)
}

func TestParse_EmptyBody(t *testing.T) {
	r, _ := setupRouter(t, nil, true)

	w := doJSON(r, http.MethodPost, "/v1/parse", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w, nil)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestResolve(t *testing.T) {
	r, deps := setupRouter(t, nil, true)

	in := entity.BookingIntent{Origin: str("Quito"), Destination: str("Madrid")}
	out := entity.BookingRequest{
		OriginCity:      str("Quito"),
		DestinationCity: str("Madrid"),
		OriginIATA:      str("UIO"),
		DestinationIATA: str("MAD"),
		Passengers:      1,
	}
	deps.resolver.On("Resolve", mock.Anything, in).Return(out)

	w := doJSON(r, http.MethodPost, "/v1/resolve", in)
	require.Equal(t, http.StatusOK, w.Code)

	var data entity.BookingRequest
	decode(t, w, &data)
	assert.Equal(t, out, data)
	deps.resolver.AssertExpectations(t)
}

func TestCreateRequest_Completed(t *testing.T) {
	r, deps := setupRouter(t, nil, true)

	entry := &entity.BookingLog{ID: "abc", Source: entity.SourceAPI, Status: entity.StatusCompleted}
	deps.processor.On("Process", mock.Anything, mock.MatchedBy(func(sub usecase.Submission) bool {
		return sub.Source == entity.SourceAPI && sub.Message == "2 billetes a Roma" && sub.SourceRef != ""
	})).Return(entry, nil)

	w := doJSON(r, http.MethodPost, "/v1/requests", MessageRequest{Message: "2 billetes a Roma"})
	require.Equal(t, http.StatusCreated, w.Code)

	var data entity.BookingLog
	decode(t, w, &data)
	assert.Equal(t, "abc", data.ID)
	assert.Equal(t, entity.StatusCompleted, data.Status)
}

func TestCreateRequest_Rejected(t *testing.T) {
	r, deps := setupRouter(t, nil, true)

	entry := &entity.BookingLog{ID: "abc", Status: entity.StatusRejected, MissingFields: []string{"date"}}
	deps.processor.On("Process", mock.Anything, mock.Anything).
		Return(entry, &intent.MissingFieldsError{Fields: []string{"date"}})

	w := doJSON(r, http.MethodPost, "/v1/requests", MessageRequest{Message: "de Quito a Madrid con Iberia"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var data RejectionResponse
	resp := decode(t, w, &data)
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_FIELDS", resp.Error.Code)
	require.NotNil(t, data.Request)
	assert.Equal(t, entity.StatusRejected, data.Request.Status)
	assert.Equal(t, intent.ClarificationPrompts([]string{"date"}), data.Prompts)
}

func TestCreateRequest_InternalError(t *testing.T) {
	r, deps := setupRouter(t, nil, true)
	deps.processor.On("Process", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	w := doJSON(r, http.MethodPost, "/v1/requests", MessageRequest{Message: "hola"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRequest(t *testing.T) {
	r, deps := setupRouter(t, nil, true)
	deps.logs.On("FindByID", mock.Anything, "abc").Return(&entity.BookingLog{ID: "abc"}, nil)
	deps.logs.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	w := doJSON(r, http.MethodGet, "/v1/requests/abc", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/requests/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w, nil)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestRequests_NoLogConfigured(t *testing.T) {
	r, _ := setupRouter(t, nil, false)

	w := doJSON(r, http.MethodGet, "/v1/requests/abc", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/requests", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRequests(t *testing.T) {
	r, deps := setupRouter(t, nil, true)
	deps.logs.On("FindRecent", mock.Anything, 5).Return([]*entity.BookingLog{{ID: "a"}, {ID: "b"}}, nil)
	deps.logs.On("FindRecent", mock.Anything, maxListLimit).Return(nil, nil)

	w := doJSON(r, http.MethodGet, "/v1/requests?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data []*entity.BookingLog
	decode(t, w, &data)
	assert.Len(t, data, 2)

	w = doJSON(r, http.MethodGet, "/v1/requests?limit=1000", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/requests?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, map[string]HealthCheck{
		"mongo": func(context.Context) error { return nil },
	}, true)
	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	r, _ = setupRouter(t, map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("down") },
	}, true)
	w = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis")
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, nil, true)
	w := doJSON(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}
