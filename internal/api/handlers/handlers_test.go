package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/staffhub/internal/api"
	"github.com/hugh/staffhub/internal/audit"
	"github.com/hugh/staffhub/internal/auth"
	"github.com/hugh/staffhub/internal/testutil"
	"github.com/hugh/staffhub/pkg/util"
)

// serverFixture wires the full router so handler tests exercise routing,
// auth middleware and JSON encoding exactly as production does.
type serverFixture struct {
	*testutil.TestSetup
	router http.Handler
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	tc := testutil.NewTestContext(t)
	t.Cleanup(tc.Cleanup)

	logger := util.NewLogger("development")
	auditLogger := audit.NewLogger(tc.DB, logger)
	authService := auth.NewService(tc.DB, tc.JWTService, auditLogger)

	router := api.NewRouter(api.RouterConfig{
		DB:          tc.DB,
		Logger:      logger,
		JWTService:  tc.JWTService,
		AuthService: authService,
		AuditLogger: auditLogger,
	})

	return &serverFixture{TestSetup: tc, router: router}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}
