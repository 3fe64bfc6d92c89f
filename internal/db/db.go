package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sharingbox-backend/config"
	"sharingbox-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates the schema plus the indexes AutoMigrate cannot express.
// Shared with the test suites, which run it against SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.AccessGroup{},
		&model.User{},
		&model.Station{},
		&model.EquipmentType{},
		&model.EquipmentInstance{},
		&model.SpecialAccessRight{},
		&model.RentalRecord{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	// At most one open rental per equipment instance. The ledger checks
	// before inserting; this index is the storage-level backstop that
	// decides races.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_equipment
	  ON %s (equipment_id)
	  WHERE end_at IS NULL;
	`, model.RentalTable, model.RentalTable)).Error; err != nil {
		return fmt.Errorf("exclusivity index failed: %w", err)
	}

	// The identify call lists a user's open rentals at one station.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_user_station
	  ON %s (user_id, station_id)
	  WHERE end_at IS NULL;
	`, model.RentalTable, model.RentalTable)).Error; err != nil {
		return fmt.Errorf("open rentals index failed: %w", err)
	}

	return nil
}
