package database

import (
	"fmt"
	"time"

	"github.com/joanie-store/storefront/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide connection opened by Connect.
var DB *gorm.DB

// PostgresConfig holds the connection settings read from the environment.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// MaxOpenConns caps the pool; zero keeps the driver default.
	MaxOpenConns int
}

// DSN renders the config as a libpq keyword/value string.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, sslMode)
}

// Connect opens the PostgreSQL pool and stores it in DB.
func Connect(cfg PostgresConfig) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		zap.L().Error("Failed to connect to database", zap.Error(err))
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	DB = db
	zap.L().Info("Connected to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return nil
}

// Migrate creates or updates the storefront tables. The composite unique
// indexes on (user_id, product_id) back the one-row-per-pair guarantees.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the pool opened by Connect.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
