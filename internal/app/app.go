package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"thriftlink-backend/internal/db"
	"thriftlink-backend/internal/handlers"
	"thriftlink-backend/internal/migrate"
	"thriftlink-backend/internal/services"
	"thriftlink-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// instanceID identifies this process in health responses and logs.
var instanceID = uuid.NewString()

// New builds the Fiber application with all routes wired to the given pool.
// Separated from Run so tests can drive the full stack in-process.
func New(pool db.Pool) *fiber.App {
	userService := services.NewUserService(pool)
	listingService := services.NewListingService(pool)

	app := fiber.New()

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Accounts
	app.Post("/createUser", handlers.CreateUser(userService))
	app.Put("/updateUser", handlers.UpdateUser(userService))

	// Listings
	app.Post("/createListing", handlers.CreateListing(userService, listingService))
	app.Put("/updateListing", handlers.UpdateListing(userService, listingService))
	app.Delete("/deleteListing", handlers.DeactivateListing(userService, listingService))
	app.Get("/getListings", handlers.GetListings(listingService))

	// Listing photos
	app.Put("/addListingPhoto", handlers.AddListingPhoto(userService, listingService))
	app.Delete("/deleteListingPhoto", handlers.DeleteListingPhoto(userService, listingService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "instance_id": instanceID})
	})

	return app
}

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "thriftlink") + "?sslmode=disable"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Schema
	if err := migrate.Up(ctx, connString); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// DB pool
	pool, err := db.Connect(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("Connected to PostgreSQL")

	app := New(pool)

	// Start Server
	port := utils.GetEnv("PORT", "8000")
	go func() {
		log.Printf("Listening on :%s (instance %s)", port, instanceID)
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	<-ctx.Done() // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
