package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/igreja-site/cms-backend/api"
	"github.com/igreja-site/cms-backend/config"
	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/models"
	"github.com/igreja-site/cms-backend/services"
	"github.com/igreja-site/cms-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	ctx := context.Background()
	if err := config.LoadSSM(ctx, c); err != nil {
		fmt.Printf("Error loading SSM parameters: %v\n", err)
		os.Exit(1)
	}

	connStr, err := connectionString(c)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Reads go to the replica when one is configured
	if replica := config.GetString(c, "DB_REPLICA_DSN", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			fmt.Printf("Error registering read replica: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Read replica registered")
	}

	currentDB := database.New(db)
	if err := currentDB.Ping(ctx); err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		fmt.Println("Running migrations...")
		if err := currentDB.Migrate(); err != nil {
			fmt.Printf("Error running migrations: %v\n", err)
			os.Exit(1)
		}
	}

	svc, err := buildServices(ctx, c, currentDB)
	if err != nil {
		fmt.Printf("Error initializing services: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, svc)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// connectionString prefers DATABASE_URL and falls back to the Supabase
// settings when DB_TYPE is "supa".
func connectionString(c map[string]string) (string, error) {
	if url := config.GetString(c, "DATABASE_URL", ""); url != "" {
		fmt.Println("Connecting to DATABASE_URL...")
		return url, nil
	}

	dbType := config.GetString(c, "DB_TYPE", "")
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "supa":
		fmt.Println("Connecting to Supabase database...")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q and no DATABASE_URL set", dbType)
	}
}

func buildServices(ctx context.Context, c map[string]string, db database.Database) (api.Services, error) {
	secret := config.GetString(c, "JWT_SECRET", "")
	if len(secret) < 32 {
		return api.Services{}, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	auth := services.NewAuthService(db.AdminUserRepo(), secret,
		time.Duration(config.GetInt(c, "JWT_ACCESS_TTL_MINUTES", 60))*time.Minute,
		time.Duration(config.GetInt(c, "JWT_REFRESH_TTL_HOURS", 24*7))*time.Hour,
	)
	if email := config.GetString(c, "ADMIN_EMAIL", ""); email != "" {
		if err := auth.EnsureAdmin(ctx, email, config.GetString(c, "ADMIN_PASSWORD", "")); err != nil {
			return api.Services{}, fmt.Errorf("seed admin user: %w", err)
		}
	}

	opts := []services.PostAuthoringOption{
		services.WithUniqueSlugs(config.GetBool(c, "ENFORCE_UNIQUE_SLUG", false)),
	}
	if notifier := services.NewEmailNotifier(c); notifier != nil {
		opts = append(opts, services.WithNotifier(notifier))
	}

	svc := api.Services{
		Auth:  auth,
		Posts: services.NewPostAuthoring(db.PostRepo(), db.PostRelationRepo(), config.SEOThresholds(c), opts...),
		Home:  services.NewHomeService(db.BannerRepo(), db.EventRepo(), db.TestimonialRepo(), db.PostRepo(), db.SiteSettingsRepo()),
	}

	if strings.TrimSpace(config.GetString(c, "S3_BUCKET", "")) != "" {
		store, err := storage.NewFromConfig(ctx, c)
		if err != nil {
			return api.Services{}, fmt.Errorf("init object storage: %w", err)
		}
		svc.Media = services.NewMediaService(store,
			config.GetInt(c, "IMAGE_MAX_WIDTH", 1600),
			config.GetInt(c, "IMAGE_JPEG_QUALITY", 82),
			int64(config.GetInt(c, "UPLOAD_MAX_MB", 10))<<20,
		)
	} else {
		zlog.Warn().Msg("S3_BUCKET not set, image uploads are disabled")
	}

	return svc, nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
