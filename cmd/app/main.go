package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/coderepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/earningrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
)

func main() {
	config := getConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustConnectDB(config)

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort, logger)
}

func getConfig() cmd.Config {
	// A missing .env is fine in containerized deployments; the variables
	// arrive through the environment itself.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:        envOr("HTTP_PORT", "8080"),
		DBHost:          requireEnv("DB_HOST"),
		DBPort:          requireEnv("DB_PORT"),
		DBUser:          requireEnv("DB_USER"),
		DBPassword:      requireEnv("DB_PASSWORD"),
		DBName:          requireEnv("DB_NAME"),
		DBSslMode:       envOr("DB_SSLMODE", "disable"),
		CodeTTL:         durationEnv("CODE_TTL", 10*time.Minute),
		CodeMaxAttempts: intEnv("CODE_MAX_ATTEMPTS", 5),
		DeliveryFee:     int64Env("DELIVERY_FEE", 5000),
		CodeCleanupSpec: envOr("CODE_CLEANUP_SPEC", "0 * * * * *"),
	}
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Environment variable %s is not a duration: %v", key, err)
	}
	return d
}

func intEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s is not an integer: %v", key, err)
	}
	return n
}

func int64Env(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Fatalf("Environment variable %s is not an integer: %v", key, err)
	}
	return n
}

func mustConnectDB(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&assignmentrepo.AssignmentDTO{},
		&coderepo.CodeDTO{},
		&earningrepo.EarningDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        root.CreateCreateOrderCommandHandler(),
		MarkOrderPreparing: root.CreateMarkOrderPreparingCommandHandler(),
		MarkOrderReady:     root.CreateMarkOrderReadyCommandHandler(),
		ClaimOrder:         root.CreateClaimOrderCommandHandler(),
		RecordPickup:       root.CreateRecordPickupCommandHandler(),
		StartTransit:       root.CreateStartTransitCommandHandler(),
		RecordDelivery:     root.CreateRecordDeliveryCommandHandler(),
		FailDelivery:       root.CreateFailDeliveryCommandHandler(),
		RequeueOrder:       root.CreateRequeueOrderCommandHandler(),
		CancelOrder:        root.CreateCancelOrderCommandHandler(),

		CreateCourier:          root.CreateCreateCourierCommandHandler(),
		SetCourierAvailability: root.CreateSetCourierAvailabilityCommandHandler(),
		ReportCourierLocation:  root.CreateReportCourierLocationCommandHandler(),

		GetEligibleOrders:   root.CreateGetEligibleOrdersQueryHandler(),
		GetCourierEarnings:  root.CreateGetCourierEarningsQueryHandler(),
		GetActiveAssignment: root.CreateGetActiveAssignmentQueryHandler(),
	})
	server.RegisterRoutes(e)

	gateway := ws.NewGateway(root.Hub(), logger)
	e.GET("/ws", gateway.Handle)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
