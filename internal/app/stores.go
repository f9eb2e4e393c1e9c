package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	orderdomain "github.com/tair/retail-dashboard/internal/order/domain"
	orderrepo "github.com/tair/retail-dashboard/internal/order/repository"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	productrepo "github.com/tair/retail-dashboard/internal/product/repository"
	sessiondomain "github.com/tair/retail-dashboard/internal/session/domain"
	sessionstore "github.com/tair/retail-dashboard/internal/session/store"
	userdomain "github.com/tair/retail-dashboard/internal/user/domain"
	userrepo "github.com/tair/retail-dashboard/internal/user/repository"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/config"
	"github.com/tair/retail-dashboard/pkg/database"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// Stores holds the repositories for the configured driver, already wrapped
// with tracing. Products reads through Mirror.
type Stores struct {
	Driver   string
	Products productdomain.Repository
	Mirror   *productrepo.MirrorProductRepository
	Users    userdomain.UserRepository
	Orders   orderdomain.Repository
	Sessions sessiondomain.Store
	// Redis is nil when Redis is disabled
	Redis *redis.Client

	ping    []func(ctx context.Context) error
	closers []func() error
}

// OpenStores connects to the configured backends and prepares their schema
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{Driver: cfg.Driver}

	var (
		products productdomain.Repository
		users    userdomain.UserRepository
		orders   orderdomain.Repository
		err      error
	)
	switch cfg.Driver {
	case config.DriverMongo:
		products, users, orders, err = s.openMongo(ctx, cfg)
	case config.DriverPostgres:
		products, users, orders, err = s.openPostgres(ctx, cfg)
	case config.DriverMemory:
		products = productrepo.NewMemoryProductRepository()
		users = userrepo.NewMemoryUserRepository()
		orders = orderrepo.NewMemoryOrderRepository()
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		s.Close()
		return nil, err
	}

	s.Mirror = productrepo.NewMirrorProductRepository(productrepo.NewTracingProductRepository(products, cfg.Driver))
	s.Products = s.Mirror
	s.Users = userrepo.NewTracingUserRepository(users)
	s.Orders = orderrepo.NewTracingOrderRepository(orders, cfg.Driver)

	s.Sessions = sessionstore.NewMemoryStore()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			s.Close()
			return nil, fmt.Errorf("failed to ping redis: %v: %w", err, apperror.ErrConnection)
		}
		s.Redis = client
		s.Sessions = sessionstore.NewRedisStore(client)
		s.ping = append(s.ping, func(ctx context.Context) error { return client.Ping(ctx).Err() })
		s.closers = append(s.closers, client.Close)
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Sessions stored in Redis")
	}

	logger.Logger.Info().Str("driver", cfg.Driver).Msg("Stores ready")
	return s, nil
}

func (s *Stores) openMongo(ctx context.Context, cfg *config.Config) (productdomain.Repository, userdomain.UserRepository, orderdomain.Repository, error) {
	client, db, err := database.NewMongoConnection(ctx, database.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	s.closers = append(s.closers, func() error { return client.Disconnect(context.Background()) })
	s.ping = append(s.ping, func(ctx context.Context) error { return client.Ping(ctx, nil) })

	products := productrepo.NewMongoProductRepository(db, cfg.Mongo.ProductsCollection, cfg.Mongo.CountersCollection)
	users := userrepo.NewMongoUserRepository(db, cfg.Mongo.UsersCollection)
	orders := orderrepo.NewMongoOrderRepository(db.Collection(cfg.Mongo.OrdersCollection))

	if err := products.EnsureIndexes(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create product indexes: %w", err)
	}
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	if err := orders.EnsureIndexes(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create order indexes: %w", err)
	}
	return products, users, orders, nil
}

func (s *Stores) openPostgres(ctx context.Context, cfg *config.Config) (productdomain.Repository, userdomain.UserRepository, orderdomain.Repository, error) {
	dbConfig := database.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	}

	gormDB, err := database.NewGormConnection(dbConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	gormSQL, err := gormDB.DB()
	if err != nil {
		return nil, nil, nil, err
	}
	s.closers = append(s.closers, gormSQL.Close)
	s.ping = append(s.ping, gormSQL.PingContext)

	ledgerDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	s.closers = append(s.closers, ledgerDB.Close)

	products := productrepo.NewGormProductRepository(gormDB)
	users := userrepo.NewGormUserRepository(gormDB)
	orders := orderrepo.NewPostgresOrderRepository(ledgerDB)

	if err := products.AutoMigrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate products: %w", err)
	}
	if err := users.AutoMigrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate users: %w", err)
	}
	if err := orders.Migrate(ctx); err != nil {
		return nil, nil, nil, err
	}
	return products, users, orders, nil
}

// Ping checks every backend
func (s *Stores) Ping(ctx context.Context) error {
	for _, ping := range s.ping {
		if err := ping(ctx); err != nil {
			return fmt.Errorf("%v: %w", err, apperror.ErrConnection)
		}
	}
	return nil
}

// Close releases every connection, newest first
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close store")
		}
	}
	s.closers = nil
}
