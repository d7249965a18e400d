package config

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"employee-records-api/models"
)

var DB *gorm.DB

// InitDB opens the configured database into DB and migrates the schema.
func InitDB(s Settings) {
	var err error

	DB, err = OpenDB(s.Database, s.Environment)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	Logger.Info().Str("driver", s.Database.Driver).Msg("Database connected successfully")
}

// OpenDB connects to the database described by ds.
func OpenDB(ds DatabaseSettings, environment string) (*gorm.DB, error) {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if environment == "production" && !ds.DebugSQL {
		logLevel = logger.Warn
	}

	cfg := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	return gorm.Open(Dialector(ds), cfg)
}

// Dialector returns the GORM dialector for the configured driver.
func Dialector(ds DatabaseSettings) gorm.Dialector {
	if ds.Driver == "sqlite" {
		return sqlite.Open(ds.Path)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		ds.Username,
		ds.Password,
		ds.Host,
		ds.Port,
		ds.Name,
	)
	return mysql.Open(dsn)
}

// Migrate creates or updates every table the API owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.AllModels()...)
}
