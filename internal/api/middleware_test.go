package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/validation"
)

func TestValidateAcceptHeader(t *testing.T) {
	tests := []struct {
		name       string
		accept     string
		wantStatus int
	}{
		{
			name:       "application/json - valid",
			accept:     "application/json",
			wantStatus: http.StatusOK,
		},
		{
			name:       "*/* - valid",
			accept:     "*/*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "application/* - valid",
			accept:     "application/*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no accept header - valid",
			accept:     "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "text/html - invalid",
			accept:     "text/html",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "complex accept with json - valid",
			accept:     "text/html,application/json;q=0.9,*/*;q=0.8",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ValidateAcceptHeader(func(c echo.Context) error {
				return c.String(http.StatusOK, "OK")
			})

			err := handler(c)

			if tt.wantStatus == http.StatusOK {
				if err != nil {
					t.Errorf("ValidateAcceptHeader() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Error("ValidateAcceptHeader() error = nil, want error")
				}
			}
		})
	}
}

func TestValidateNodeParam(t *testing.T) {
	tests := []struct {
		name    string
		node    string
		wantErr bool
	}{
		{"simple name", "pve1", false},
		{"fqdn", "pve1.lab.example.com", false},
		{"hyphen", "pve-node-02", false},
		{"underscore", "pve_1", true},
		{"leading hyphen", "-pve", true},
		{"empty", "", true},
		{"path traversal", "..", true},
	}

	mw := ValidateNodeParam(validation.New())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest("GET", "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("node")
			c.SetParamValues(tt.node)

			called := false
			handler := mw(func(c echo.Context) error {
				called = true
				return c.String(http.StatusOK, "OK")
			})

			err := handler(c)

			if tt.wantErr {
				apiErr, ok := err.(*APIError)
				if !ok {
					t.Fatalf("ValidateNodeParam() error = %v, want *APIError", err)
				}
				if apiErr.Code != http.StatusBadRequest {
					t.Errorf("ValidateNodeParam() code = %v, want %v", apiErr.Code, http.StatusBadRequest)
				}
				if _, ok := apiErr.FieldError["node"]; !ok {
					t.Errorf("ValidateNodeParam() field errors = %v, want node entry", apiErr.FieldError)
				}
				if called {
					t.Error("ValidateNodeParam() called the handler for an invalid node")
				}
			} else if err != nil {
				t.Errorf("ValidateNodeParam() error = %v, want nil", err)
			}
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		wantStatus  int
	}{
		{
			name:        "pretty true",
			queryParams: map[string]string{"pretty": "true"},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "pretty 0",
			queryParams: map[string]string{"pretty": "0"},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "pretty not a boolean",
			queryParams: map[string]string{"pretty": "yes please"},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "no query params",
			queryParams: map[string]string{},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "unknown params ignored",
			queryParams: map[string]string{"limit": "50"},
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest("GET", "/", nil)
			q := req.URL.Query()
			for k, v := range tt.queryParams {
				q.Add(k, v)
			}
			req.URL.RawQuery = q.Encode()
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ValidateQueryParams(func(c echo.Context) error {
				return c.String(http.StatusOK, "OK")
			})

			err := handler(c)

			if tt.wantStatus == http.StatusOK {
				if err != nil {
					t.Errorf("ValidateQueryParams() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Error("ValidateQueryParams() error = nil, want error")
				}
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SecurityHeaders(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	err := handler(c)
	if err != nil {
		t.Fatalf("SecurityHeaders() error = %v, want nil", err)
	}

	// Check security headers
	headers := c.Response().Header()

	expectedHeaders := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-Xss-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}

	for header, expectedValue := range expectedHeaders {
		gotValue := headers.Get(header)
		if gotValue != expectedValue {
			t.Errorf("SecurityHeaders() %s = %v, want %v", header, gotValue, expectedValue)
		}
	}
}
