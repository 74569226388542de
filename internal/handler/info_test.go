package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(nil, log)
}

func TestAbout(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.About(rec, httptest.NewRequest("GET", "/api/info/about", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body aboutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Name)
	assert.NotEmpty(t, body.Objectives)
}

func TestOrganizationChart(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.OrganizationChart(rec, httptest.NewRequest("GET", "/api/info/organization", nil))

	require.Equal(t, 200, rec.Code)

	var body map[string][]officerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["officers"])
}

func TestByeLaws(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ByeLaws(rec, httptest.NewRequest("GET", "/api/info/byelaws", nil))

	require.Equal(t, 200, rec.Code)

	var body map[string][]byeLawResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["documents"])
	for _, d := range body["documents"] {
		assert.NotEmpty(t, d.Title)
		assert.NotZero(t, d.Year)
	}
}
