package api

import (
	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/archiveservice"
	"github.com/dhcraft/m3gim/internal/searchindex"
)

// RecordListResponse wraps filtered record listings.
type RecordListResponse struct {
	Records []*archive.Record `json:"records" validate:"required"`
	Total   int               `json:"total" example:"409" validate:"required"`
}

// KonvolutListResponse wraps the Konvolut listing.
type KonvolutListResponse struct {
	Konvolute []*archiveservice.KonvolutDetail `json:"konvolute" validate:"required"`
	Total     int                              `json:"total" example:"38" validate:"required"`
}

// PersonListResponse wraps the person index.
type PersonListResponse struct {
	Persons []archiveservice.PersonItem `json:"persons" validate:"required"`
	Total   int                         `json:"total" validate:"required"`
}

// OrgListResponse wraps the organization index.
type OrgListResponse struct {
	Organizations []archiveservice.OrgItem `json:"organizations" validate:"required"`
	Total         int                      `json:"total" validate:"required"`
}

// LocationListResponse wraps the location index.
type LocationListResponse struct {
	Locations []archiveservice.LocationItem `json:"locations" validate:"required"`
	Total     int                           `json:"total" validate:"required"`
}

// WorkListResponse wraps the musical-work index.
type WorkListResponse struct {
	Works []archiveservice.WorkItem `json:"works" validate:"required"`
	Total int                       `json:"total" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []searchindex.SearchResult `json:"results" validate:"required"`
}
