package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-kasir-pos/internal/handler"
	"go-kasir-pos/internal/middleware"
	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
	"go-kasir-pos/internal/service"
	"go-kasir-pos/internal/ws"
	"go-kasir-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}
	db.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	brandRepo := repository.NewBrandRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	authService := service.NewAuthService(userRepo)
	saleService := service.NewSaleService(productRepo, txRepo, db, wsHub)
	productService := service.NewProductService(productRepo, brandRepo, categoryRepo, txRepo, db)
	reportService := service.NewReportService(txRepo)

	authHandler := handler.NewAuthHandler(authService)
	txHandler := handler.NewTransactionHandler(saleService)
	productHandler := handler.NewProductHandler(productService)
	reportHandler := handler.NewReportHandler(reportService)
	refHandler := handler.NewReferenceHandler(brandRepo, categoryRepo)
	userHandler := handler.NewUserHandler(userRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Kasir POS v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/logout", authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Products (mutations are admin-only)
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	// Reference data
	protected.Get("/brands", refHandler.GetBrands)
	protected.Get("/categories", refHandler.GetCategories)

	// Transactions (history must be registered before :id)
	protected.Post("/transactions", txHandler.CreateTransaction)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/history", txHandler.GetHistory)
	protected.Get("/transactions/:id", txHandler.GetTransaction)

	// Reports & dashboard
	protected.Get("/reports/daily", middleware.RequireRole(model.RoleAdmin), reportHandler.GetDailyReport)
	protected.Get("/dashboard/daily-stats", middleware.RequireRole(model.RoleAdmin), reportHandler.GetDailyStats)
	protected.Get("/dashboard/recent-activities", reportHandler.GetRecentActivities)

	// User management
	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), userHandler.GetUsers)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.DeleteUser)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	if err := database.Close(db); err != nil {
		log.Println("Warning: failed to close database:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:  "Administrator",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s (ADMIN)", email)
}
