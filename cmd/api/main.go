package main

import (
	"context"
	"log"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/account"
	"github.com/01moynul/taptosell-storefront/internal/admin"
	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/auth"
	"github.com/01moynul/taptosell-storefront/internal/catalog"
	"github.com/01moynul/taptosell-storefront/internal/config"
	"github.com/01moynul/taptosell-storefront/internal/database"
	"github.com/01moynul/taptosell-storefront/internal/handlers"
	"github.com/01moynul/taptosell-storefront/internal/order"
	"github.com/01moynul/taptosell-storefront/internal/routes"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/storage"
	"github.com/01moynul/taptosell-storefront/internal/wishlist"
	"github.com/shopspring/decimal"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. --- Persisted Visitor Storage ---
	var local storage.Store
	var sweepers []*storage.MemoryStore
	switch cfg.StorageDriver {
	case config.DriverMySQL:
		db, err := database.OpenDB(cfg.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to storage database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare storage tables: %v", err)
		}
		local = storage.NewSQLStore(db)
	default:
		log.Println("WARNING: Using in-memory visitor storage. Carts are lost on restart.")
		mem := storage.NewMemoryStore(0)
		local = mem
		sweepers = append(sweepers, mem)
	}

	// 2. --- Session Storage (expires when idle) ---
	scoped := storage.NewMemoryStore(cfg.SessionTTL)
	sweepers = append(sweepers, scoped)

	// 3. --- Upstream API & Sessions ---
	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	signer := auth.NewSigner(cfg.VisitorSecret, cfg.VisitorTTL)
	sessions := session.NewManager(api, local, scoped)

	// --- Application Setup ---
	// Every per-user service talks to the API with the visitor's credentials.
	orders := order.NewService(func(s *session.Session) order.API { return sessions.Client(s) })
	app := &handlers.Handlers{
		Sessions:    sessions,
		Accounts:    account.NewService(api, sessions),
		Catalog:     catalog.NewService(api),
		Orders:      orders,
		Wishlist:    wishlist.NewService(func(s *session.Session) wishlist.API { return sessions.Client(s) }),
		Admin:       admin.NewService(func(s *session.Session) admin.API { return sessions.Client(s) }, orders),
		Currency:    cfg.Currency,
		ShippingFee: decimal.NewFromFloat(cfg.ShippingFee),
	}

	// --- 4. Background Workers ---
	// Drop idle session data so abandoned visitors do not pile up.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		log.Println("Background Worker Started: Sweeping idle sessions...")

		for range ticker.C {
			for _, store := range sweepers {
				if n := store.Sweep(); n > 0 {
					log.Printf("Swept %d idle storage entries", n)
				}
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		Signer:         signer,
		VisitorCookie:  cfg.VisitorCookie,
		SecureCookie:   cfg.SecureCookie,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// --- Start Server ---
	log.Printf("Starting TapToSell storefront on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
