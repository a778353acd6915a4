package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/events"
	listing "marketplace/internal/listingService"
	payment "marketplace/internal/paymentService"
	"marketplace/internal/repository"
	"marketplace/internal/server"
	"marketplace/internal/trigger"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// TestEnv is a fully wired application backed by the in-memory store and bus
type TestEnv struct {
	Router  *gin.Engine
	Repo    *repository.MemoryRepo
	Bus     *events.Bus
	Gateway *payment.MockGateway
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		APIBaseURL: "http://localhost:8080",
		Payment: config.PaymentCfg{
			PublishableKey: "pk_test_integration",
			SecretKey:      "sk_test_integration",
			Currency:       "usd",
			CurrencyLocale: "en-US",
		},
		PriceMode: mode,
	}
}

// SetupTestEnv initializes the router with a seeded in-memory repository for integration testing.
func SetupTestEnv(t *testing.T, mode string) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	require.NoError(t, repository.Seed(context.Background(), repo))

	bus := events.NewBus()
	bus.Subscribe(trigger.NewPriceUpdater(repo, trigger.Mode(mode)).HandleBidCreated)
	t.Cleanup(func() { _ = bus.Close(context.Background()) })

	ctrl := gomock.NewController(t)
	gateway := payment.NewMockGateway(ctrl)

	cfg := testConfig(mode)
	router := server.SetupRouter(
		listing.NewListingService(repo, bus),
		payment.NewPaymentService(gateway, cfg.Payment.Currency),
		cfg,
	)
	return &TestEnv{Router: router, Repo: repo, Bus: bus, Gateway: gateway}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// dataMap returns the data field of a single-record envelope
func dataMap(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "data should be a JSON object")
	return data
}

// dataList returns the data field of a collection envelope
func dataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	data, ok := resp["data"].([]any)
	require.True(t, ok, "data should be a JSON array")
	return data
}
