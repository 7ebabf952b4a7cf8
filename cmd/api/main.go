package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront-kv/internal/handler"
	"go-storefront-kv/internal/middleware"
	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/service"
	"go-storefront-kv/internal/storage"
	"go-storefront-kv/internal/ws"
	"go-storefront-kv/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Open Store
	db := database.ConnectDB()
	store, err := storage.New(db)
	if err != nil {
		log.Fatal("Failed to initialize store: ", err)
	}

	// 3. Seed demo catalog, accounts and job board
	seedStore(store)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	identityRepo := repository.NewIdentityRepo(store)
	jobRepo := repository.NewJobRepo(store)

	catalogService := service.NewCatalogService(store, wsHub)
	cartService := service.NewCartService(store)
	checkoutService := service.NewCheckoutService(store, identityRepo, wsHub)
	siteService := service.NewSiteService(store)

	authHandler := handler.NewAuthHandler(identityRepo)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService)
	userHandler := handler.NewUserHandler(identityRepo)
	jobHandler := handler.NewJobHandler(jobRepo)
	siteHandler := handler.NewSiteHandler(siteService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Storefront KV v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/products", catalogHandler.GetProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/jobs", jobHandler.GetJobs)

	site := api.Group("/site")
	site.Get("/stats", siteHandler.GetStats)
	site.Post("/visits", siteHandler.RecordVisit)
	site.Get("/cookie-consent", siteHandler.GetCookieConsent)
	site.Put("/cookie-consent", siteHandler.SetCookieConsent)

	// ============ PROTECTED ROUTES ============
	// The guard resolves the bearer session and redirects unauthenticated
	// or under-privileged access.
	guarded := middleware.Guarded(identityRepo)

	auth.Post("/logout", guarded, authHandler.Logout)
	auth.Get("/me", guarded, authHandler.Me)

	cart := api.Group("/cart", guarded)
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/", cartHandler.AddToCart)
	cart.Delete("/:productId", cartHandler.RemoveFromCart)
	cart.Delete("/", cartHandler.ClearCart)

	api.Post("/checkout", guarded, orderHandler.Checkout)
	api.Get("/orders", guarded, orderHandler.GetOrders)

	// Admin subtree additionally requires the admin role.
	admin := api.Group("/admin", guarded)
	admin.Post("/products", catalogHandler.CreateProduct)
	admin.Delete("/products/:id", catalogHandler.DeleteProduct)
	admin.Patch("/products/:id/stock", catalogHandler.AdjustStock)
	admin.Get("/users", userHandler.GetUsers)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedStore writes the demo collections on first run. Keys that already
// exist are left alone.
func seedStore(store *storage.Store) {
	seedIfAbsent(store, storage.KeyProducts, []model.Product{
		{ID: 1, Name: "Phone X", Description: "Smartphone with 128GB storage, 48MP camera", Price: 799.99, Stock: 10, Category: "Electronics", Image: "phone.jpg"},
		{ID: 2, Name: "PHP Book", Description: "Learn PHP in 30 days - complete guide", Price: 29.99, Stock: 25, Category: "Books", Image: "book.jpg"},
		{ID: 3, Name: "Basic T-Shirt", Description: "100% cotton black t-shirt", Price: 19.99, Stock: 50, Category: "Clothing", Image: "tshirt.jpg"},
		{ID: 4, Name: "Wireless Headphones", Description: "Headphones with noise cancellation", Price: 149.99, Stock: 15, Category: "Electronics", Image: "headphones.jpg"},
		{ID: 5, Name: "Smart Watch", Description: "Smartwatch with GPS and heart-rate monitor", Price: 299.99, Stock: 8, Category: "Electronics", Image: "smartwatch.jpg"},
		{ID: 6, Name: "Laptop Backpack", Description: "Waterproof backpack for laptops up to 15.6\"", Price: 49.99, Stock: 30, Category: "Accessories", Image: "backpack.jpg"},
	})

	var users []model.User
	if err := store.Get(storage.KeyUsers, &users); errors.Is(err, storage.ErrNotFound) {
		now := time.Now()
		admin := model.User{ID: 1, Username: "admin", Email: "admin@email.com", Role: model.RoleAdmin, RegisteredAt: now}
		demo := model.User{ID: 2, Username: "joao", Email: "joao@email.com", Role: model.RoleUser, RegisteredAt: now}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
			return
		}
		if err := demo.SetPassword("123456"); err != nil {
			log.Printf("Warning: failed to hash demo password: %v", err)
			return
		}
		if err := store.Put(storage.KeyUsers, []model.User{admin, demo}); err != nil {
			log.Printf("Warning: failed to seed users: %v", err)
		} else {
			log.Println("Seeded accounts: admin@email.com / admin123, joao@email.com / 123456")
		}
	}

	seedIfAbsent(store, storage.KeyJobs, []model.Job{
		{ID: 1, Title: "Web Developer", Description: "Looking for a PHP/JavaScript developer with e-commerce experience.", Location: "Lisbon", Salary: "30-40k/year", PostedAt: time.Now()},
		{ID: 2, Title: "UX/UI Designer", Description: "Designer for e-commerce with a focus on user experience.", Location: "Porto", Salary: "25-35k/year", PostedAt: time.Now()},
	})

	seedIfAbsent(store, storage.KeyCart, []model.CartLine{})
	seedIfAbsent(store, storage.KeyOrders, []model.Order{})
}

func seedIfAbsent(store *storage.Store, key string, value any) {
	var probe any
	if err := store.Get(key, &probe); !errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err := store.Put(key, value); err != nil {
		log.Printf("Warning: failed to seed %q: %v", key, err)
	}
}
