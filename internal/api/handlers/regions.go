package handlers

import (
	"net/http"
	"strings"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/apperr"
)

// RegionHandler exposes read-only catalog listings.
type RegionHandler struct {
	Catalog *domain.Catalog
}

func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	regions := h.Catalog.Regions()
	res := dto.ListRegionsResponse{
		Regions: make([]dto.RegionResponse, 0, len(regions)),
	}
	for _, reg := range regions {
		res.Regions = append(res.Regions, dto.RegionResponse{RegionID: reg.RegionID, Name: reg.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Tours lists a region's tours in catalog order. Unknown regions are 404.
func (h *RegionHandler) Tours(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	regionID := strings.TrimSpace(r.PathValue("id"))
	if !h.Catalog.HasRegion(regionID) {
		e := apperr.New(apperr.CodeNotFound, "region not found")
		writeError(w, r, apperr.Status(e), apperr.PublicMessage(e))
		return
	}

	tours := h.Catalog.ToursInRegion(regionID)
	res := dto.ListToursResponse{
		RegionID: regionID,
		Tours:    make([]dto.TourResponse, 0, len(tours)),
	}
	for _, t := range tours {
		res.Tours = append(res.Tours, dto.NewTourResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}
