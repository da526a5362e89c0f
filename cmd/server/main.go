package main

import (
	"fmt"
	"log"

	"github.com/salonhq/invoice-delivery-service/internal/config"
	"github.com/salonhq/invoice-delivery-service/internal/database"
	"github.com/salonhq/invoice-delivery-service/internal/handler"
	"github.com/salonhq/invoice-delivery-service/internal/mailer"
	"github.com/salonhq/invoice-delivery-service/internal/middleware"
	"github.com/salonhq/invoice-delivery-service/internal/pdf"
	"github.com/salonhq/invoice-delivery-service/internal/render"
	"github.com/salonhq/invoice-delivery-service/internal/repository"
	"github.com/salonhq/invoice-delivery-service/internal/server"
	"github.com/salonhq/invoice-delivery-service/internal/service"
	"github.com/salonhq/invoice-delivery-service/internal/storage"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize storage uploader
	log.Println("Initializing storage uploader...")
	uploader, err := storage.NewS3Uploader(&storage.Config{
		Endpoint:        cfg.StorageEndpoint,
		AccessKeyID:     cfg.StorageAccessKey,
		AccessKeySecret: cfg.StorageSecretKey,
		Bucket:          cfg.StorageBucket,
		Region:          cfg.StorageRegion,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage uploader: %v", err)
	}

	// Initialize mailer
	log.Println("Initializing mailer...")
	mail, err := mailer.NewSMTPMailer(&mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		To:       cfg.MailTo,
	})
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	// Initialize invoice history repository (optional)
	var repo repository.InvoiceRepository
	if cfg.PostgresURL != "" {
		log.Println("Initializing database...")
		db, err := database.NewPostgresDB(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		repo = repository.NewPostgresInvoiceRepository(db.GetPool())
	} else {
		log.Println("No database configured, invoice history disabled")
	}

	// Create the invoice pipeline service
	log.Println("Creating invoice pipeline service...")
	rasterizer := pdf.NewRodRasterizer(pdf.NewLauncher(cfg.BrowserStrategy, cfg.BrowserBin))
	invoiceService := service.NewInvoiceService(
		render.NewHTMLRenderer(),
		rasterizer,
		uploader,
		mail,
		repo,
		cfg.RenderTimeout,
	)

	// Create handler
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)

	// Register routes with auth middleware
	router := appServer.GetRouter()
	authorized := router.Group("/", middleware.APIKeyAuth(cfg.APIKey))
	invoiceHandler.RegisterRoutes(authorized)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
