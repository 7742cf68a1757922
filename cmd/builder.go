// Package cmd assembles the application: configuration, logging, storage,
// services, controllers and the HTTP server.
package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopcore/api"
	apicart "shopcore/api/cart"
	apicatalog "shopcore/api/catalog"
	"shopcore/api/health"
	appcart "shopcore/application/cart"
	appcatalog "shopcore/application/catalog"
	"shopcore/config"
	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/infrastructure/cache"
	"shopcore/infrastructure/persistence/memory"
	"shopcore/infrastructure/persistence/mysql"
	"shopcore/pkg/logger"
)

// AppBuilder wires the application together. The storage backend follows
// database.type: "mysql" connects via gorm, anything else falls back to the
// in-memory stores for local development.
type AppBuilder struct {
	cfg *config.Config
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build constructs the App. It exits on unrecoverable wiring failures such
// as an unreachable database.
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	var db *gorm.DB
	var cartRepo cart.Repository
	var productRepo catalog.ProductRepository
	var categoryRepo catalog.CategoryRepository

	if b.cfg.Database.Type == "mysql" {
		db, cartRepo, productRepo, categoryRepo = b.initMySQL()
	} else {
		logger.Info("Using in-memory persistence layer")
		cartRepo = memory.NewCartRepository()
		productRepo = memory.NewProductRepository()
		categoryRepo = memory.NewCategoryRepository()
	}

	var redisClient *redis.Client
	if b.cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     b.cfg.Redis.Addr,
			Password: b.cfg.Redis.Password,
			DB:       b.cfg.Redis.DB,
		})
		cartRepo = cache.NewCachedCartRepository(cartRepo, cache.NewCartCache(redisClient))
		logger.Info("Cart cache enabled", zap.String("addr", b.cfg.Redis.Addr))
	}

	cartService := appcart.NewService(cartRepo, productRepo)
	productService := appcatalog.NewProductService(productRepo)
	categoryService := appcatalog.NewCategoryService(categoryRepo)

	router := api.NewRouter(
		b.cfg,
		b.newHealthController(db, redisClient),
		apicart.NewController(cartService),
		apicatalog.NewProductController(productService),
		apicatalog.NewCategoryController(categoryService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
		redis:  redisClient,
	}
}

func (b *AppBuilder) initMySQL() (*gorm.DB, cart.Repository, catalog.ProductRepository, catalog.CategoryRepository) {
	logger.Info("Using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            b.cfg.Database.Host,
		Port:            b.cfg.Database.Port,
		Username:        b.cfg.Database.Username,
		Password:        b.cfg.Database.Password,
		Database:        b.cfg.Database.Database,
		MaxOpenConns:    b.cfg.Database.MaxOpenConns,
		MaxIdleConns:    b.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: b.cfg.Database.ConnMaxLifetime,
		LogLevel:        b.cfg.Database.LogLevel,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	// Schema management is manual outside development.
	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	return db,
		mysql.NewCartRepository(db),
		mysql.NewProductRepository(db),
		mysql.NewCategoryRepository(db)
}

func (b *AppBuilder) newHealthController(db *gorm.DB, redisClient *redis.Client) *health.Controller {
	if db == nil {
		return health.NewController(b.cfg, nil, redisClient)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return health.NewController(b.cfg, nil, redisClient)
	}
	return health.NewController(b.cfg, sqlDB, redisClient)
}
