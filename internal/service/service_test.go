package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/kaskos/internal/auth"
	"github.com/mmynk/kaskos/internal/calculator"
	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage/sqlite"
	"github.com/mmynk/kaskos/pkg/api"
	"github.com/mmynk/kaskos/pkg/api/apiconnect"
)

// testClock is a settable time source shared with the server goroutines.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testEnv struct {
	auth   apiconnect.AuthServiceClient
	ledger apiconnect.LedgerServiceClient
	store  *sqlite.SQLiteStore
	clock  *testClock
}

var testRoster = &auth.Roster{Members: []auth.RosterEntry{
	{Name: "Aqil", Role: "admin", Password: "aqil-secret"},
	{Name: "Ucup", Password: "ucup-secret"},
	{Name: "Diki", Role: "member", Password: "diki-secret"},
}}

var testPasswords = map[string]string{
	"Aqil": "aqil-secret",
	"Ucup": "ucup-secret",
	"Diki": "diki-secret",
}

// newTestServer starts both services over httptest with a temp SQLite
// database, a seeded roster and a 50000/month schedule starting 2025-01.
func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	if _, err := auth.SeedRoster(context.Background(), store, authenticator, testRoster); err != nil {
		t.Fatalf("failed to seed roster: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	clock := &testClock{now: time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)}

	authSvc := NewAuthService(authenticator, jwtManager, store, logger)
	ledgerSvc := NewLedgerService(store, LedgerConfig{
		Schedule: calculator.Schedule{
			Start: models.Period{Year: 2025, Month: time.January},
			Rate:  50000,
		},
		Mode:         calculator.ModeLifetime,
		StoreTimeout: 5 * time.Second,
	}, logger, WithClock(clock.Now))

	mux := http.NewServeMux()
	for _, r := range Routes(authSvc, ledgerSvc, jwtManager) {
		mux.Handle(r.Path, r.Handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		auth:   apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		store:  store,
		clock:  clock,
	}
}

func (e *testEnv) login(t *testing.T, name string) string {
	t.Helper()
	resp, err := e.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Name:     name,
		Password: testPasswords[name],
	}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", name, err)
	}
	return resp.Msg.Token
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func (e *testEnv) contribute(t *testing.T, token, member string, amount int64) {
	t.Helper()
	_, err := e.ledger.RecordContribution(context.Background(), withToken(&api.RecordContributionRequest{
		Member: member,
		Amount: amount,
	}, token))
	if err != nil {
		t.Fatalf("RecordContribution(%s, %d) failed: %v", member, amount, err)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}
