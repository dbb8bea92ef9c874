package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Address     string `gorm:"not null"`
	City        string `gorm:"index;not null"`
	Country     string `gorm:"not null"`
	StarRating  int
	Description string
	Latitude    float64
	Longitude   float64
	PhoneNumber string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
	RoomDeluxe RoomType = "DELUXE"
)

type Room struct {
	ID            string          `gorm:"primaryKey"`
	HotelID       string          `gorm:"index;not null"`
	RoomNumber    string          `gorm:"not null"`
	RoomType      RoomType        `gorm:"not null"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	MaxOccupancy  int
	Description   string
	IsAvailable   bool
	FloorNumber   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Guest struct {
	ID             string `gorm:"primaryKey"`
	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	PhoneNumber    string
	DocumentType   string
	DocumentNumber string
	Nationality    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
