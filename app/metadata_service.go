package app

import (
	"epilag/internal/errors"
	"epilag/ports"
)

// MetadataService answers signal discovery questions for the UI: what
// signals exist, where a candidate pair overlaps geographically, and over
// which dates.
type MetadataService struct {
	source ports.MetadataSource
}

// NewMetadataService creates a metadata service.
func NewMetadataService(source ports.MetadataSource) *MetadataService {
	return &MetadataService{source: source}
}

// Signals lists every signal in the catalog.
func (s *MetadataService) Signals() []ports.SignalRef {
	return s.source.Signals()
}

// SharedGeoTypes lists the geography types both signals are reported at.
func (s *MetadataService) SharedGeoTypes(a, b ports.SignalRef) ([]string, error) {
	if a == b {
		return nil, errors.InvalidInput("cannot compare a signal with itself")
	}
	shared := s.source.SharedGeoTypes(a, b)
	if len(shared) == 0 {
		return nil, errors.NotFound("shared geography types for the selected signals")
	}
	return shared, nil
}

// SharedDates reconciles the coverage window of a signal pair at one
// geography type.
func (s *MetadataService) SharedDates(a, b ports.SignalRef, geoType string) (*ports.SharedCoverage, error) {
	return s.source.SharedDates(a, b, geoType)
}
