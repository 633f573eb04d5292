package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserRejectsOwnAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.DELETE("/usuarios/:id", fakeAuth("ana"), DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, "/usuarios/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No puedes eliminar tu propia cuenta")
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}

func TestDeleteUserRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.DELETE("/usuarios/:id", fakeAuth("ana"), DeleteUser)

	req := httptest.NewRequest(http.MethodDelete, "/usuarios/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}
