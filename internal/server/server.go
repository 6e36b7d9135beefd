package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/hearth/internal/engine"
	"github.com/dukerupert/hearth/internal/handler"
	"github.com/dukerupert/hearth/internal/middleware"
	"github.com/dukerupert/hearth/internal/report"
	"github.com/dukerupert/hearth/internal/store"
	ws "github.com/dukerupert/hearth/internal/websocket"
)

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	authH          *handler.AuthHandler
	itemH          *handler.ItemHandler
	inventoryH     *handler.InventoryHandler
	purchaseH      *handler.PurchaseHandler
	billH          *handler.BillHandler
	budgetH        *handler.BudgetHandler
	shoppingH      *handler.ShoppingHandler
	wasteH         *handler.WasteHandler
	expenseH       *handler.ExpenseHandler
	reportH        *handler.ReportHandler
	auditH         *handler.AuditHandler
	sessionStore   *store.SessionStore
	householdStore *store.HouseholdStore
	rateLimiter    *middleware.RateLimiter
	logger         *slog.Logger
}

func New(db *sql.DB, sessionTTL time.Duration, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	eng := engine.New(db, logger.With("component", "engine"))
	reporter := report.New(db)

	userStore := store.NewUserStore(db)
	householdStore := store.NewHouseholdStore(db)
	sessionStore := store.NewSessionStore(db)
	itemStore := store.NewItemStore(db)
	inventoryStore := store.NewInventoryStore(db)
	purchaseStore := store.NewPurchaseStore(db)
	billStore := store.NewBillStore(db)
	budgetStore := store.NewBudgetStore(db)
	shoppingStore := store.NewShoppingListStore(db)
	wasteStore := store.NewWasteStore(db)
	expenseStore := store.NewExpenseStore(db)
	auditStore := store.NewAuditStore(db)

	return &Server{
		db:             db,
		hub:            hub,
		authH:          handler.NewAuthHandler(userStore, householdStore, sessionStore, sessionTTL, logger.With("component", "auth")),
		itemH:          handler.NewItemHandler(eng, itemStore, hub),
		inventoryH:     handler.NewInventoryHandler(eng, inventoryStore, hub),
		purchaseH:      handler.NewPurchaseHandler(eng, purchaseStore, hub),
		billH:          handler.NewBillHandler(eng, billStore, hub),
		budgetH:        handler.NewBudgetHandler(eng, budgetStore, hub),
		shoppingH:      handler.NewShoppingHandler(eng, shoppingStore, hub),
		wasteH:         handler.NewWasteHandler(eng, wasteStore, hub),
		expenseH:       handler.NewExpenseHandler(expenseStore),
		reportH:        handler.NewReportHandler(reporter),
		auditH:         handler.NewAuditHandler(auditStore),
		sessionStore:   sessionStore,
		householdStore: householdStore,
		rateLimiter:    middleware.NewRateLimiter(),
		logger:         logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.householdStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Item catalog
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("GET /api/items/{id}", s.itemH.Get)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)

	// Inventory
	mux.HandleFunc("POST /api/inventory", s.inventoryH.Create)
	mux.HandleFunc("GET /api/inventory", s.inventoryH.List)
	mux.HandleFunc("GET /api/inventory/{id}", s.inventoryH.Get)
	mux.HandleFunc("PUT /api/inventory/{id}", s.inventoryH.Update)
	mux.HandleFunc("DELETE /api/inventory/{id}", s.inventoryH.Delete)

	// Purchases
	mux.HandleFunc("POST /api/purchases", s.purchaseH.Intake)
	mux.HandleFunc("GET /api/purchases", s.purchaseH.List)
	mux.HandleFunc("GET /api/purchases/{id}", s.purchaseH.Get)

	// Bills
	mux.HandleFunc("POST /api/bills", s.billH.Create)
	mux.HandleFunc("GET /api/bills", s.billH.List)
	mux.HandleFunc("GET /api/bills/{id}", s.billH.Get)
	mux.HandleFunc("PUT /api/bills/{id}", s.billH.Update)
	mux.HandleFunc("DELETE /api/bills/{id}", s.billH.Delete)
	mux.HandleFunc("POST /api/bills/{id}/settle", s.billH.Settle)

	// Budgets
	mux.HandleFunc("POST /api/budgets", s.budgetH.Create)
	mux.HandleFunc("GET /api/budgets", s.budgetH.List)
	mux.HandleFunc("PUT /api/budgets/{id}", s.budgetH.Update)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.budgetH.Delete)

	// Shopping list
	mux.HandleFunc("POST /api/shopping-list", s.shoppingH.Add)
	mux.HandleFunc("GET /api/shopping-list", s.shoppingH.List)
	mux.HandleFunc("POST /api/shopping-list/{id}/purchased", s.shoppingH.MarkPurchased)
	mux.HandleFunc("DELETE /api/shopping-list/{id}", s.shoppingH.Remove)
	mux.HandleFunc("POST /api/shopping-list/promote", s.shoppingH.Promote)

	// Waste
	mux.HandleFunc("POST /api/waste-events", s.wasteH.Record)
	mux.HandleFunc("GET /api/waste-events", s.wasteH.List)

	// Expenses (derived, read-only)
	mux.HandleFunc("GET /api/expenses", s.expenseH.List)

	// Reports
	mux.HandleFunc("GET /api/reports/monthly/{period}", s.reportH.Monthly)

	// Audit trail
	mux.HandleFunc("GET /api/audit-log", s.auditH.List)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
