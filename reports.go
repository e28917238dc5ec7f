package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Report is a resident-submitted cleanliness issue.
type Report struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId,omitempty"`
	DistrictID    int64          `json:"districtId,omitempty"`
	Category      ReportCategory `json:"category"`
	Status        ReportStatus   `json:"status"`
	Description   string         `json:"description,omitempty"`
	Address       string         `json:"address,omitempty"`
	Latitude      float64        `json:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty"`
	PhotoURLs     []string       `json:"photoUrls,omitempty"`
	AfterPhotoURL string         `json:"afterPhotoUrl,omitempty"`
	CreatedAt     *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty"`
}

// CreateReportPayload is the body for POST /reports.
type CreateReportPayload struct {
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	Address     string         `json:"address,omitempty"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	PhotoURLs   []string       `json:"photoUrls,omitempty"`
}

func (p CreateReportPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&p.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&p.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// ReportFeedbackPayload rates how a completed report was handled.
type ReportFeedbackPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (p ReportFeedbackPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&p.Comment, validation.Length(0, 2000)),
	)
}

// Category is one selectable report category as served by /categories.
type Category struct {
	ID    int64          `json:"id"`
	Name  ReportCategory `json:"name"`
	Label string         `json:"label,omitempty"`
}

// ReportService binds the resident-facing report endpoints.
type ReportService struct {
	client *Client
	logger Logger
}

func NewReportService(c *Client) *ReportService {
	return &ReportService{client: c, logger: defLogger{}}
}

func (s *ReportService) WithLogger(logger Logger) *ReportService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// UserReports lists the reports submitted by one user.
func (s *ReportService) UserReports(ctx context.Context, userID int64) ([]Report, error) {
	query := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}

	reports := []Report{}
	if err := s.client.Get(ctx, "/reports", query, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ActiveReports lists the reports currently visible on the map.
func (s *ReportService) ActiveReports(ctx context.Context) ([]Report, error) {
	query := url.Values{"status": {"active"}}

	reports := []Report{}
	if err := s.client.Get(ctx, "/reports", query, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Details fetches a single report.
func (s *ReportService) Details(ctx context.Context, reportID int64) (*Report, error) {
	report := &Report{}
	if err := s.client.Get(ctx, fmt.Sprintf("/reports/%d", reportID), nil, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Create submits a new report.
func (s *ReportService) Create(ctx context.Context, payload CreateReportPayload) (*Report, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid report payload")
	}

	report := &Report{}
	if err := s.client.Post(ctx, "/reports", payload, report); err != nil {
		return nil, err
	}
	return report, nil
}

// SubmitFeedback rates the handling of a report.
func (s *ReportService) SubmitFeedback(ctx context.Context, reportID int64, payload ReportFeedbackPayload) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid feedback payload")
	}
	return s.client.Post(ctx, fmt.Sprintf("/reports/%d/feedback", reportID), payload, nil)
}

// Categories lists the selectable report categories.
func (s *ReportService) Categories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := s.client.Get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
