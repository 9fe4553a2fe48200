// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	aclUseCase "github.com/allisson/keywhiz-core/internal/acl/usecase"
	clientsHTTP "github.com/allisson/keywhiz-core/internal/clients/http"
	clientsRepository "github.com/allisson/keywhiz-core/internal/clients/repository"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
	"github.com/allisson/keywhiz-core/internal/config"
	cryptoDomain "github.com/allisson/keywhiz-core/internal/crypto/domain"
	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
	"github.com/allisson/keywhiz-core/internal/database"
	groupsHTTP "github.com/allisson/keywhiz-core/internal/groups/http"
	groupsRepository "github.com/allisson/keywhiz-core/internal/groups/repository"
	groupsUseCase "github.com/allisson/keywhiz-core/internal/groups/usecase"
	"github.com/allisson/keywhiz-core/internal/http"
	membershipHTTP "github.com/allisson/keywhiz-core/internal/membership/http"
	membershipRepository "github.com/allisson/keywhiz-core/internal/membership/repository"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
	"github.com/allisson/keywhiz-core/internal/metrics"
	secretsHTTP "github.com/allisson/keywhiz-core/internal/secrets/http"
	secretsRepository "github.com/allisson/keywhiz-core/internal/secrets/repository"
	secretsUseCase "github.com/allisson/keywhiz-core/internal/secrets/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider

	// Managers
	txManager database.TxManager

	// Crypto (C1)
	rootKeyChain  *cryptoDomain.RootKeyChain
	aeadManager   cryptoService.AEADManager
	kmsService    cryptoService.KMSService
	cryptographer cryptoService.Cryptographer

	// Repositories
	clientRepo        clientsRepository.ClientRepository
	groupRepo         groupsRepository.GroupRepository
	membershipRepo    membershipRepository.MembershipRepository
	secretSeriesRepo  secretsRepository.SecretSeriesRepository
	secretContentRepo secretsRepository.SecretContentRepository

	// Use cases
	clientUseCase     clientsUseCase.ClientUseCase
	groupUseCase      groupsUseCase.GroupUseCase
	membershipUseCase membershipUseCase.MembershipUseCase
	secretController  secretsUseCase.SecretController
	aclEngine         aclUseCase.AclEngine

	// HTTP handlers
	clientHandler     *clientsHTTP.ClientHandler
	groupHandler      *groupsHTTP.GroupHandler
	membershipHandler *membershipHTTP.MembershipHandler
	secretHandler     *secretsHTTP.SecretHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	rootKeyChainInit      sync.Once
	aeadManagerInit       sync.Once
	kmsServiceInit        sync.Once
	cryptographerInit     sync.Once
	clientRepoInit        sync.Once
	groupRepoInit         sync.Once
	membershipRepoInit    sync.Once
	secretSeriesRepoInit  sync.Once
	secretContentRepoInit sync.Once
	clientUseCaseInit     sync.Once
	groupUseCaseInit      sync.Once
	membershipUseCaseInit sync.Once
	secretControllerInit  sync.Once
	aclEngineInit         sync.Once
	clientHandlerInit     sync.Once
	groupHandlerInit      sync.Once
	membershipHandlerInit sync.Once
	secretHandlerInit     sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry/Prometheus metrics provider, or
// nil if metrics are disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the standalone metrics HTTP server, or nil if metrics
// are disabled in configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsServer creates the standalone metrics server on its own port.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	return http.NewMetricsServer(
		c.config.MetricsServerHost,
		c.config.MetricsServerPort,
		c.Logger(),
		metricsProvider,
	), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	clientUseCase, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for http server: %w", err)
	}

	clientHandler, err := c.ClientHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get client handler for http server: %w", err)
	}

	groupHandler, err := c.GroupHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get group handler for http server: %w", err)
	}

	membershipHandler, err := c.MembershipHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership handler for http server: %w", err)
	}

	secretHandler, err := c.SecretHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.config,
		clientUseCase,
		clientHandler,
		groupHandler,
		membershipHandler,
		secretHandler,
		metricsProvider,
		c.config.MetricsNamespace,
	)

	return server, nil
}
