package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cozythreads/storefront/internal/cartstore"
	"github.com/cozythreads/storefront/internal/catalog"
	"github.com/cozythreads/storefront/internal/checkout"
	"github.com/cozythreads/storefront/internal/models"
	"github.com/cozythreads/storefront/internal/mykafka"
	"github.com/cozythreads/storefront/internal/session"
)

var testSecret = []byte("test-session-secret")

type fakeGateway struct {
	calls  []float64
	secret string
	err    error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount float64, _ string) (string, error) {
	f.calls = append(f.calls, amount)
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Store    cartstore.Store
	Product  *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Gateway  *fakeGateway
	Cookie   *http.Cookie
	Key      string
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.CartRecord{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat := catalog.FromProducts([]models.Product{
		{ID: 1, Name: "Organic Cotton Tee", Price: 20.00},
		{ID: 2, Name: "Recycled Wool Sweater", Price: 68.00},
		{ID: 3, Name: "Hemp Canvas Tote", Price: 32.00},
	})

	store := cartstore.NewGormStore(initTestDB(t), nil)
	gw := &fakeGateway{secret: "pi_123_secret_456"}
	registry := checkout.NewRegistry(store, cat, gw, "usd", nil, nil)

	key := "test-session"
	token, err := session.Sign(key, testSecret)
	require.NoError(t, err)

	return &testEnv{
		T:       t,
		E:       echo.New(),
		Store:   store,
		Product: &ProductHandler{Catalog: cat},
		Cart: &CartHandler{
			Store:         store,
			Catalog:       cat,
			Producer:      &mykafka.Producer{},
			SessionSecret: testSecret,
		},
		Checkout: &CheckoutHandler{
			Sessions:      registry,
			Producer:      &mykafka.Producer{},
			SessionSecret: testSecret,
		},
		Gateway: gw,
		Cookie:  &http.Cookie{Name: session.Cookie, Value: token, Path: "/"},
		Key:     key,
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(env.Cookie)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedCart(entries []models.CartEntry) {
	require.NoError(env.T, env.Store.Save(context.Background(), env.Key, entries))
}

func (env *testEnv) storedCart() []models.CartEntry {
	entries, err := env.Store.Load(context.Background(), env.Key)
	require.NoError(env.T, err)
	return entries
}
