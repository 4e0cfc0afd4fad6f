package dto

import (
	"tour-package-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Caps are optional; negative or zero caps are valid and simply restrictive.
type PackageRequest struct {
	RegionID  string   `json:"region_id" validate:"required,max=64"`
	MaxDays   *int     `json:"max_days"`
	MaxBudget *float64 `json:"max_budget"`
}

// Validate validates the PackageRequest using the validator.
func (r *PackageRequest) Validate() error {
	return validate.Struct(r)
}

type PackageResponse struct {
	RegionID   string         `json:"region_id"`
	Tours      []TourResponse `json:"tours"`
	TotalCost  float64        `json:"total_cost"`
	TotalDays  int            `json:"total_days"`
	TotalValue int            `json:"total_value"`
	Truncated  bool           `json:"truncated"`
}

func NewPackageResponse(pkg domain.TravelPackage) PackageResponse {
	res := PackageResponse{
		RegionID:   pkg.RegionID,
		Tours:      make([]TourResponse, 0, len(pkg.Tours)),
		TotalCost:  pkg.TotalCost,
		TotalDays:  pkg.TotalDays,
		TotalValue: pkg.TotalValue,
		Truncated:  pkg.Truncated,
	}
	for _, t := range pkg.Tours {
		res.Tours = append(res.Tours, NewTourResponse(t))
	}
	return res
}
