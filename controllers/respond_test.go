package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hotel-booking/domain"
)

func TestStatusFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{domain.ValidationError{Field: "name"}, http.StatusBadRequest},
		{domain.UnauthenticatedError{}, http.StatusUnauthorized},
		{domain.InvalidCredentialError{}, http.StatusUnauthorized},
		{domain.ForbiddenError{}, http.StatusForbidden},
		{domain.NotFoundError{Resource: "hotel"}, http.StatusNotFound},
		{fmt.Errorf("load: %w", domain.NotFoundError{Resource: "room"}), http.StatusNotFound},
		{domain.ConflictError{Resource: "room number"}, http.StatusConflict},
		{domain.DuplicateKeyError{Field: "email"}, http.StatusConflict},
		{domain.InternalError{Msg: "boom"}, http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, ok := range map[string]bool{"12": true, "0": false, "-1": false, "abc": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, got := uintParam(c, "id")
		if got != ok {
			t.Fatalf("%q: expected ok=%v, got %v", raw, ok, got)
		}
		if !ok && w.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", raw, w.Code)
		}
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); body == "" || strings.Contains(body, "10.0.0.1") {
		t.Fatalf("internal detail leaked: %s", body)
	}
}
