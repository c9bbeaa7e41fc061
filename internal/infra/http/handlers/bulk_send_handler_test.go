package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterw/leadreach/internal/usecase"
)

type stubLimiter struct {
	allow bool
}

func (s stubLimiter) Allow(key string) bool { return s.allow }

func TestBulkSendHandlerRateLimited(t *testing.T) {
	handler := NewBulkSendHandler(&usecase.BulkDispatchUseCase{}, stubLimiter{allow: false})

	req := httptest.NewRequest("POST", "/api/bulk-send", strings.NewReader(`{"leads":[]}`))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, 429, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded. Max 10 bulk sends per hour.", body["error"])
}

func TestBulkSendHandlerInvalidJSON(t *testing.T) {
	handler := NewBulkSendHandler(&usecase.BulkDispatchUseCase{}, stubLimiter{allow: true})

	req := httptest.NewRequest("POST", "/api/bulk-send", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, 400, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid JSON", body["error"])
}

func TestBulkSendHandlerEmptyBatch(t *testing.T) {
	handler := NewBulkSendHandler(&usecase.BulkDispatchUseCase{}, stubLimiter{allow: true})

	req := httptest.NewRequest("POST", "/api/bulk-send", strings.NewReader(`{"leads":[]}`))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, 400, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No leads provided", body["error"])
}
