package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skillforge/backend/config"
	"skillforge/backend/models"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Postgres is the durable store. Users live in a relational table;
// each ProgressRecord is kept whole as a JSONB document, since the
// engine always reads and writes the record as a unit.
type Postgres struct {
	db *gorm.DB
}

type userRow struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type progressRow struct {
	UserID uint           `gorm:"primaryKey"`
	Record datatypes.JSON `gorm:"not null"`
}

func (progressRow) TableName() string { return "user_progress" }

func OpenPostgres(cfg *config.Config) (*Postgres, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&userRow{}, &progressRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) CreateUser(user *models.User) error {
	row := userRow{
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userRow{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return err
	}

	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

func (p *Postgres) UserByEmail(email string) (*models.User, error) {
	var row userRow
	if err := p.db.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return row.toUser(), nil
}

func (p *Postgres) UserByID(id uint) (*models.User, error) {
	var row userRow
	if err := p.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return row.toUser(), nil
}

func (r *userRow) toUser() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func (p *Postgres) CreateProgress(userID uint, record *models.ProgressRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&progressRow{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrProgressExists
		}
		return tx.Create(&progressRow{UserID: userID, Record: datatypes.JSON(data)}).Error
	})
}

func (p *Postgres) Progress(userID uint) (*models.ProgressRecord, error) {
	var row progressRow
	if err := p.db.First(&row, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return decodeRecord(row.Record)
}

// UpdateProgress runs fn against the stored document inside a
// SELECT ... FOR UPDATE transaction, which gives the same one-writer-per-
// record guarantee the memory store gets from its per-record mutex.
func (p *Postgres) UpdateProgress(userID uint, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error) {
	var updated *models.ProgressRecord

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var row progressRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProgressNotFound
			}
			return err
		}

		record, err := decodeRecord(row.Record)
		if err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := tx.Model(&progressRow{}).Where("user_id = ?", userID).
			Update("record", datatypes.JSON(data)).Error; err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func decodeRecord(data datatypes.JSON) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode progress record: %w", err)
	}
	return &record, nil
}
