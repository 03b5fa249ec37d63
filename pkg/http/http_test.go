package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type echoHandler struct{}

type greetRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Lang  string `json:"lang" default:"ar" validate:"oneof=ar en"`
}

func (echoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/greet", func(c echo.Context) error {
		var req greetRequest
		if errs := ReadAndValidateRequest(c, &req); errs != nil {
			return BadRequestResponse(c, errs)
		}
		return SuccessResponse(c, req)
	})
	e.GET("/conflict", func(c echo.Context) error {
		return AppErrorResponse(c, ConflictError("ERR_GENERATION_IN_PROGRESS", "busy"))
	})
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]string{"status": "ok"})
	})
}

func newTestServer() *Server {
	return NewServer([]Handler{echoHandler{}}, WithMetricsPath(""))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	errs, _ := body["data"].([]interface{})
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %v", body["data"])
	}
	first := errs[0].(map[string]interface{})
	if first["field"] != "name" || first["code"] != "ERR_REQUIRED" {
		t.Fatalf("unexpected first error %v", first)
	}
}

func TestDefaultsApplyBeforeValidation(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(`{"name":"a","email":"a@b.co"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	if data["lang"] != "ar" {
		t.Fatalf("default not applied: %v", data)
	}
}

func TestAppErrorStatusIsMirrored(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conflict", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"].(float64) != http.StatusConflict {
		t.Fatalf("envelope status = %v", body["status"])
	}
}

func TestUnknownRouteRendersEnvelope(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	errs := decode(t, rec)["data"].([]interface{})
	if errs[0].(map[string]interface{})["code"] != "ERR_NOT_FOUND" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("request id header missing")
	}
}

func TestClientDecodesEnvelope(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Echo())
	defer ts.Close()

	var data map[string]string
	code, err := NewClient().GetEnvelope(context.Background(), ts.URL+"/health", &data)
	if err != nil || code != http.StatusOK {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if data["status"] != "ok" {
		t.Fatalf("data = %v", data)
	}

	code, err = NewClient().GetEnvelope(context.Background(), ts.URL+"/conflict", nil)
	if err == nil || code != http.StatusConflict {
		t.Fatalf("expected conflict, code=%d err=%v", code, err)
	}
}
