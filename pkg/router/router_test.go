package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
	UserID   string `json:"user_id"`
}

type csvFile struct{}

func (csvFile) FileName() string    { return "report.csv" }
func (csvFile) ContentType() string { return "text/csv" }
func (csvFile) Content() []byte     { return []byte("a,b\n") }

func newTestRouter() *Router {
	r := New(config.Default(), logger.NewLogger(logger.SILENCE))

	GET(r, "/hello", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		if req.Name == "" {
			return nil, errorx.New(errorx.NotFound, "Not found name")
		}
		return &echoResponse{Greeting: "hello " + req.Name, UserID: xcontext.RequestUserID(ctx)}, nil
	})

	POST(r, "/hello", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.Unavailable, "AI service is unavailable")
	})

	private := r.Group("/private")
	private.Use(RequireUser)
	GET(private, "/file", func(ctx context.Context, req *struct{}) (*csvFile, error) {
		return &csvFile{}, nil
	})

	return r
}

func serve(r *Router, req *http.Request) (*httptest.ResponseRecorder, response) {
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRouter_Envelope(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/hello?name=priya", nil)
	req.Header.Set(UserIDHeader, "user-1")
	w, resp := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, map[string]any{"greeting": "hello priya", "user_id": "user-1"}, resp.Data)

	w, resp = serve(r, httptest.NewRequest(http.MethodGet, "/hello", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, int64(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found name", resp.Error)

	body := strings.NewReader(`{"name": "priya"}`)
	req = httptest.NewRequest(http.MethodPost, "/hello", body)
	req.Header.Set("Content-Type", "application/json")
	w, _ = serve(r, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/hello", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w, resp = serve(r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_MiddlewareAndDownload(t *testing.T) {
	r := newTestRouter()

	w, resp := serve(r, httptest.NewRequest(http.MethodGet, "/private/file", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/private/file", nil)
	req.Header.Set(UserIDHeader, "user-admin")
	w, _ = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="report.csv"`, w.Header().Get("Content-Disposition"))
	require.Equal(t, "a,b\n", w.Body.String())
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, statusOf(errorx.New(errorx.ValidationFailed, "x")))
	require.Equal(t, http.StatusConflict, statusOf(errorx.New(errorx.AlreadyExists, "x")))
	require.Equal(t, http.StatusInternalServerError, statusOf(context.Canceled))
}
