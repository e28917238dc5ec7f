package client

import (
	"context"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Geometry is the minimal GeoJSON geometry carried for district boundaries.
// Coordinates stay raw; the map layer consumes them as-is.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature wrapping one geometry.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   *Geometry      `json:"geometry"`
}

// FeatureCollection is the shape the map layer and the import endpoint
// consume.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

var geometryTypes = map[string]struct{}{
	"Point":           {},
	"MultiPoint":      {},
	"LineString":      {},
	"MultiLineString": {},
	"Polygon":         {},
	"MultiPolygon":    {},
	"GeometryCollection": {},
}

// NormalizeFeatureCollection lifts whatever GeoJSON fragment the server or
// an import file provides into a FeatureCollection: bare geometries and
// single features are wrapped, collections pass through unchanged.
func NormalizeFeatureCollection(raw json.RawMessage) (*FeatureCollection, error) {
	probe := struct {
		Type string `json:"type"`
	}{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid GeoJSON payload")
	}

	switch {
	case probe.Type == "FeatureCollection":
		collection := &FeatureCollection{}
		if err := json.Unmarshal(raw, collection); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid GeoJSON feature collection")
		}
		return collection, nil

	case probe.Type == "Feature":
		feature := Feature{}
		if err := json.Unmarshal(raw, &feature); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid GeoJSON feature")
		}
		return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{feature}}, nil

	default:
		if _, ok := geometryTypes[probe.Type]; !ok {
			return nil, goerrors.New(fmt.Sprintf("unsupported GeoJSON type %q", probe.Type), goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest)
		}
		geometry := &Geometry{}
		if err := json.Unmarshal(raw, geometry); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid GeoJSON geometry")
		}
		return &FeatureCollection{
			Type:     "FeatureCollection",
			Features: []Feature{{Type: "Feature", Geometry: geometry}},
		}, nil
	}
}

// District is an administrative area drawn on the map.
type District struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color,omitempty"`
	Geometry *Geometry `json:"geometry,omitempty"`
}

// DistrictStats aggregates report activity per district.
type DistrictStats struct {
	DistrictID       int64   `json:"districtId"`
	Name             string  `json:"name,omitempty"`
	TotalReports     int     `json:"totalReports"`
	ResolvedReports  int     `json:"resolvedReports"`
	CleanlinessScore float64 `json:"cleanlinessScore,omitempty"`
}

// DistrictPayload creates or updates a district.
type DistrictPayload struct {
	Name     string    `json:"name"`
	Color    string    `json:"color,omitempty"`
	Geometry *Geometry `json:"geometry,omitempty"`
}

func (p DistrictPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Color, validation.Length(0, 32)),
	)
}

// DistrictService binds the district management endpoints.
type DistrictService struct {
	client *Client
	logger Logger
}

func NewDistrictService(c *Client) *DistrictService {
	return &DistrictService{client: c, logger: defLogger{}}
}

func (s *DistrictService) WithLogger(logger Logger) *DistrictService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *DistrictService) List(ctx context.Context) ([]District, error) {
	districts := []District{}
	if err := s.client.Get(ctx, "/districts", nil, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

func (s *DistrictService) Stats(ctx context.Context) ([]DistrictStats, error) {
	stats := []DistrictStats{}
	if err := s.client.Get(ctx, "/districts/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DistrictService) Create(ctx context.Context, payload DistrictPayload) (*District, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid district payload")
	}

	district := &District{}
	if err := s.client.Post(ctx, "/districts", payload, district); err != nil {
		return nil, err
	}
	return district, nil
}

func (s *DistrictService) Update(ctx context.Context, districtID int64, payload DistrictPayload) (*District, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid district payload")
	}

	district := &District{}
	if err := s.client.Patch(ctx, fmt.Sprintf("/districts/%d", districtID), payload, district); err != nil {
		return nil, err
	}
	return district, nil
}

// ImportGeoJSON uploads district boundaries. The input is normalized first,
// so callers may hand over a bare geometry or a single feature.
func (s *DistrictService) ImportGeoJSON(ctx context.Context, raw json.RawMessage) ([]District, error) {
	collection, err := NormalizeFeatureCollection(raw)
	if err != nil {
		return nil, err
	}

	districts := []District{}
	if err := s.client.Post(ctx, "/districts/import", collection, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// ExportGeoJSON downloads all district boundaries as a feature collection.
func (s *DistrictService) ExportGeoJSON(ctx context.Context) (*FeatureCollection, error) {
	collection := &FeatureCollection{}
	if err := s.client.Get(ctx, "/districts/export", nil, collection); err != nil {
		return nil, err
	}
	return collection, nil
}
