package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopledger/internal/inventory"
	"github.com/Skotchmaster/shopledger/internal/ledger"
	"github.com/Skotchmaster/shopledger/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type recordingPublisher struct {
	mu         sync.Mutex
	alerts     []inventory.Alert
	thresholds []int
	err        error
}

func (p *recordingPublisher) PublishAlerts(_ context.Context, threshold int, alerts []inventory.Alert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alerts...)
	p.thresholds = append(p.thresholds, threshold)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Ledger *ledger.Ledger
	Inv    *InventoryHTTP
	Pub    *recordingPublisher
	Admin  string
	User   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	l := ledger.New()
	pub := &recordingPublisher{}
	inv := NewInventoryHTTP(pub, inventory.DefaultThreshold)

	e := echo.New()
	Register(e, &Deps{
		LedgerHandler:    NewLedgerHTTP(l),
		InventoryHandler: inv,
		JWTSecret:        testSecret,
	})

	admin, err := tokens.NewAccessToken("1", tokens.RoleAdmin, time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)
	user, err := tokens.NewAccessToken("2", "user", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	return &testEnv{T: t, E: e, Ledger: l, Inv: inv, Pub: pub, Admin: admin, User: user}
}

// do sends a JSON request through the router. token may be empty.
func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// errorMessage reads the body echo's default error handler writes.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}
