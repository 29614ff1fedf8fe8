package vehicle

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("vehicle not found")
	ErrPlateAlreadyUsed = errors.New("license plate already registered")
	ErrInvalidYear      = errors.New("invalid vehicle year")
	ErrPermissionDenied = errors.New("permission denied")
)

// Vehicle represents a customer's car on file at the station.
type Vehicle struct {
	ID        string // UUID
	OwnerID   string
	OwnerName string
	Make      string
	Model     string
	Year      int
	Plate     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	OwnerID  string
	Keyword  string // matches make, model or plate
	Page     int
	PageSize int
	SortBy   string
	SortOrder string
}
