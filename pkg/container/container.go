package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"funpark-backend/internal/config"
	"funpark-backend/internal/infrastructure/cache"
	"funpark-backend/internal/infrastructure/database"
	"funpark-backend/internal/infrastructure/telegram"

	catalogHandler "funpark-backend/internal/domains/catalog/handler"
	catalogRepo "funpark-backend/internal/domains/catalog/repository"
	checkoutHandler "funpark-backend/internal/domains/checkout/handler"
	checkoutService "funpark-backend/internal/domains/checkout/service"
	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	paymentHandler "funpark-backend/internal/domains/payment/handler"
	paymentService "funpark-backend/internal/domains/payment/service"
	promoHandler "funpark-backend/internal/domains/promo/handler"
	promoRepo "funpark-backend/internal/domains/promo/repository"
	promoService "funpark-backend/internal/domains/promo/service"
)

// Container is the root of the dependency graph. Initialization order is
// config → infrastructure → repositories → services → handlers.
type Container struct {
	Config   *config.Config
	DB       *database.PostgresDB
	Cache    *cache.RedisClient
	Notifier *telegram.Notifier
	Gateway  *wayforpay.Client

	PromoRepo   promoRepo.PromoRepository
	CatalogRepo catalogRepo.CatalogRepository

	PromoService    promoService.PromoService
	CheckoutService checkoutService.CheckoutService
	CallbackService paymentService.CallbackService

	PromoHandler    *promoHandler.PromoHandler
	CleanupHandler  *promoHandler.CleanupHandler
	CatalogHandler  *catalogHandler.CatalogHandler
	CheckoutHandler *checkoutHandler.CheckoutHandler
	CallbackHandler *paymentHandler.CallbackHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	if err := c.initCache(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initClients()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[Container] Initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig := &database.DBConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		Username: c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.Database,
		SSLMode:  c.Config.Database.SSLMode,

		MaxConns:          int32(c.Config.Database.MaxConns),
		MinConns:          int32(c.Config.Database.MinConns),
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,

		MaxRetries:     5,
		RetryDelay:     time.Second,
		ConnectTimeout: 10 * time.Second,
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initCache() error {
	redisClient := cache.NewRedisClient(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := redisClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Cache = redisClient
	return nil
}

func (c *Container) initClients() {
	c.Notifier = telegram.NewNotifier(c.Config.Telegram.WebhookURL)

	c.Gateway = wayforpay.NewClient(&wayforpay.Config{
		MerchantAccount: c.Config.WayForPay.MerchantAccount,
		SecretKey:       c.Config.WayForPay.SecretKey,
		APIURL:          c.Config.WayForPay.APIURL,
		DomainName:      c.Config.MerchantDomainName(),
		ReturnURL:       c.Config.App.SiteURL + c.Config.WayForPay.ReturnPath,
		ServiceURL:      c.Config.App.SiteURL + c.Config.WayForPay.CallbackPath,
	})
}

func (c *Container) initRepositories() {
	c.PromoRepo = promoRepo.NewPostgresRepository(c.DB.Pool)
	c.CatalogRepo = catalogRepo.NewCachedRepository(
		catalogRepo.NewPostgresRepository(c.DB.Pool),
		c.Cache,
	)
}

func (c *Container) initServices() {
	c.PromoService = promoService.NewPromoService(c.PromoRepo)
	c.CheckoutService = checkoutService.NewCheckoutService(c.CatalogRepo, c.PromoService, c.Gateway)
	c.CallbackService = paymentService.NewCallbackService(
		c.Config.WayForPay.SecretKey,
		c.PromoService,
		c.Notifier,
	)
}

func (c *Container) initHandlers() {
	c.PromoHandler = promoHandler.NewPromoHandler(c.PromoService)
	c.CleanupHandler = promoHandler.NewCleanupHandler(c.PromoService, c.Config.Cron.Secret)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogRepo)
	c.CheckoutHandler = checkoutHandler.NewCheckoutHandler(c.CheckoutService)
	c.CallbackHandler = paymentHandler.NewCallbackHandler(c.CallbackService)
}

// HealthCheck pings the stateful dependencies.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.HealthCheck(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("[Container] Redis close error: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[Container] Database close error: %v", err)
		}
	}
}
