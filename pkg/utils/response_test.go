package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusCreated, map[string]int{"amount": 500})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"amount":500}`, w.Body.String())
}

func TestRespondWithJSON_Unmarshalable(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusNotFound, "order not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"order not found"}`, w.Body.String())
}

func TestRespondWithText(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithText(w, http.StatusOK, "OK42")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "OK42", w.Body.String())
}

func TestRespondWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithDetails(w, http.StatusBadRequest, "validation failed", map[string]string{"amount": "failed on 'gt' rule"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"validation failed","details":{"amount":"failed on 'gt' rule"}}`, w.Body.String())
}
