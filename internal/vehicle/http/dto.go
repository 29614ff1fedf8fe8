package http

import (
	"time"

	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

// ListVehiclesRequest defines query parameters for listing vehicles.
type ListVehiclesRequest struct {
	request.ListParams
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=make model year created_at"`
}

type VehicleResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		OwnerID:   v.OwnerID,
		OwnerName: v.OwnerName,
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		Plate:     v.Plate,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CreateVehicleRequest struct {
	Make  string `json:"make" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year" binding:"required"`
	Plate string `json:"plate" binding:"required"`
}

type UpdateVehicleRequest struct {
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
	Plate *string `json:"plate"`
}
