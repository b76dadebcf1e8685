// Package model holds the GORM persistence models. They mirror the database
// schema and are mapped to pure domain entities at the repository boundary.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"stride/internal/domain/entity"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Habits load in insertion order; the repository enforces the ordering
	// on every preload.
	Habits []*HabitModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// HabitModel mirrors the 'habits' table. The failure history and urge log
// are JSONB columns: they are only ever read and written as a whole, along
// with their habit.
type HabitModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(200);not null"`
	StartDate       time.Time `gorm:"not null"`
	LastFailureDate *time.Time
	History         datatypes.JSONSlice[time.Time]
	AlmostRelapses  datatypes.JSONSlice[entity.AlmostRelapse]
	ShareCode       string `gorm:"type:varchar(12);uniqueIndex;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Shares []*HabitShareModel `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (HabitModel) TableName() string {
	return "habits"
}

// HabitShareModel mirrors the 'habit_shares' table: the receiver-side index
// of sharing grants. The composite primary key makes a grant idempotent at
// the storage layer, and the habit FK cascades so deleting a habit drops
// its dangling shares.
type HabitShareModel struct {
	HabitID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (HabitShareModel) TableName() string {
	return "habit_shares"
}
