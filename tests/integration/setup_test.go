package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"datamint/internal/handlers"
	"datamint/internal/logger"
	"datamint/internal/middleware"
	"datamint/internal/models"
	"datamint/internal/money"
	"datamint/internal/services"
	"datamint/internal/validator"
)

const registrarKey = "test-registrar-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Dataset{},
		&models.OwnershipShare{},
		&models.Holding{},
		&models.CurveState{},
		&models.PaymentAccount{},
		&models.Allowance{},
		&models.Purchase{},
		&models.PriceSnapshot{},
		&models.Event{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	eventService := services.NewEventService(db)
	curveService := services.NewCurveService(db)
	ledgerService := services.NewLedgerService(db)
	paymentService := services.NewPaymentService(db)
	datasetService := services.NewDatasetService(db, curveService, ledgerService)
	settlementService := services.NewSettlementService(db, curveService, ledgerService, paymentService, eventService)
	snapshotService := services.NewSnapshotService(db, curveService)

	// Handlers
	datasetHandler := handlers.NewDatasetHandler(datasetService, curveService, ledgerService, snapshotService, eventService)
	purchaseHandler := handlers.NewPurchaseHandler(settlementService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, eventService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public catalog and pricing routes
	datasets := v1.Group("/datasets")
	datasets.GET("", datasetHandler.ListDatasets)
	datasets.GET("/:id", datasetHandler.GetDataset)
	datasets.GET("/:id/shares", datasetHandler.GetShares)
	datasets.GET("/:id/price", datasetHandler.GetPrice)
	datasets.GET("/:id/curve", datasetHandler.GetCurveState)
	datasets.GET("/:id/price-history", datasetHandler.GetPriceHistory)

	// Registrar routes
	registrar := v1.Group("/")
	registrar.Use(middleware.RegistrarAuthMiddleware(registrarKey))
	registrar.POST("/datasets", datasetHandler.MintDataset)
	registrar.DELETE("/datasets/:id", datasetHandler.UnlistDataset)
	registrar.POST("/wallet/deposit", paymentHandler.Deposit)

	// Buyer routes
	buyer := v1.Group("/")
	buyer.Use(middleware.BuyerAuth())
	buyer.POST("/datasets/:id/purchase", purchaseHandler.PurchaseDataset)
	buyer.GET("/purchases", purchaseHandler.ListMyPurchases)
	buyer.GET("/wallet/balance", paymentHandler.GetBalance)
	buyer.POST("/wallet/approve", paymentHandler.Approve)
	buyer.GET("/wallet/allowance", paymentHandler.GetAllowance)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
// token is a buyer bearer token; pass registrarKey as apiKey for registrar routes.
func (app *testApp) request(method, path, body, token, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// buyerToken mints a buyer bearer token for the given wallet address.
func buyerToken(t *testing.T, address string) string {
	t.Helper()
	token, err := middleware.GenerateBuyerToken(address)
	if err != nil {
		t.Fatalf("failed to mint buyer token: %v", err)
	}
	return token
}

// mintDataset mints a dataset through the registrar API and returns its id.
func (app *testApp) mintDataset(t *testing.T, body string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/datasets", body, "", registrarKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("mint failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	dataset := result["dataset"].(map[string]interface{})
	return dataset["id"].(float64)
}

// fund deposits micro-units for an address through the registrar API,
// rendered as the decimal string the endpoint accepts.
func (app *testApp) fund(t *testing.T, address string, amount int64) {
	t.Helper()
	body := fmt.Sprintf(`{"address":%q,"amount":%q}`, address, money.Format(amount))
	rec := app.request("POST", "/api/v1/wallet/deposit", body, "", registrarKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}
}

// approve grants the settlement escrow an allowance from the buyer.
func (app *testApp) approve(t *testing.T, token string, amount int64) {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%q}`, money.Format(amount))
	rec := app.request("POST", "/api/v1/wallet/approve", body, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("approve failed: %d %s", rec.Code, rec.Body.String())
	}
}
