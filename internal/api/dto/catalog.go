package dto

import "tour-package-service/internal/domain"

type RegionResponse struct {
	RegionID string `json:"region_id"`
	Name     string `json:"name"`
}

type ListRegionsResponse struct {
	Regions []RegionResponse `json:"regions"`
}

type AttractionResponse struct {
	AttractionID  string `json:"attraction_id"`
	Name          string `json:"name"`
	CulturalValue int    `json:"cultural_value"`
}

type TourResponse struct {
	TourID      string               `json:"tour_id"`
	Name        string               `json:"name"`
	RegionID    string               `json:"region_id"`
	Days        int                  `json:"days"`
	Cost        float64              `json:"cost"`
	Attractions []AttractionResponse `json:"attractions"`
}

type ListToursResponse struct {
	RegionID string         `json:"region_id"`
	Tours    []TourResponse `json:"tours"`
}

func NewTourResponse(t *domain.Tour) TourResponse {
	attractions := make([]AttractionResponse, 0, len(t.Attractions))
	for _, a := range t.Attractions {
		attractions = append(attractions, AttractionResponse{
			AttractionID:  a.AttractionID,
			Name:          a.Name,
			CulturalValue: a.CulturalValue,
		})
	}
	return TourResponse{
		TourID:      t.TourID,
		Name:        t.Name,
		RegionID:    t.RegionID,
		Days:        t.Days,
		Cost:        t.Cost,
		Attractions: attractions,
	}
}
