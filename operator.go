package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// OperatorStats summarizes the triage queue for the operator dashboard.
type OperatorStats struct {
	TotalReports           int     `json:"totalReports"`
	NewReports             int     `json:"newReports"`
	InProgressReports      int     `json:"inProgressReports"`
	CompletedReports       int     `json:"completedReports"`
	AverageResolutionHours float64 `json:"averageResolutionHours,omitempty"`
}

// OperatorReportFilter narrows the operator report queue.
type OperatorReportFilter struct {
	Status     ReportStatus
	Category   ReportCategory
	DistrictID int64
	Search     string
}

// Values encodes the filter as query parameters, dropping empty fields.
func (f *OperatorReportFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	if f.Status != "" {
		values.Set("status", string(f.Status))
	}
	if f.Category != "" {
		values.Set("category", string(f.Category))
	}
	if f.DistrictID != 0 {
		values.Set("district_id", strconv.FormatInt(f.DistrictID, 10))
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

// UpdateReportStatusPayload moves a report through the triage flow.
type UpdateReportStatusPayload struct {
	Status        ReportStatus `json:"status"`
	Comment       string       `json:"comment,omitempty"`
	AfterPhotoURL string       `json:"afterPhotoUrl,omitempty"`
}

func (p UpdateReportStatusPayload) Validate() error {
	statuses := make([]any, 0, len(AllReportStatuses()))
	for _, status := range AllReportStatuses() {
		statuses = append(statuses, status)
	}

	return validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.Required, validation.In(statuses...)),
		validation.Field(&p.Comment, validation.Length(0, 2000)),
	)
}

// OperatorService binds the operator console endpoints. The route guard
// keeps these pages operator/admin only; the backend enforces the same rule
// on its side.
type OperatorService struct {
	client *Client
	logger Logger
}

func NewOperatorService(c *Client) *OperatorService {
	return &OperatorService{client: c, logger: defLogger{}}
}

func (s *OperatorService) WithLogger(logger Logger) *OperatorService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *OperatorService) Stats(ctx context.Context) (*OperatorStats, error) {
	stats := &OperatorStats{}
	if err := s.client.Get(ctx, "/operator/stats", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *OperatorService) Reports(ctx context.Context, filter *OperatorReportFilter) ([]Report, error) {
	reports := []Report{}
	if err := s.client.Get(ctx, "/operator/reports", filter.Values(), &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *OperatorService) ReportDetails(ctx context.Context, reportID int64) (*Report, error) {
	report := &Report{}
	if err := s.client.Get(ctx, fmt.Sprintf("/operator/reports/%d", reportID), nil, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *OperatorService) UpdateReportStatus(ctx context.Context, reportID int64, payload UpdateReportStatusPayload) (*Report, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid status payload")
	}

	report := &Report{}
	if err := s.client.Patch(ctx, fmt.Sprintf("/operator/reports/%d/status", reportID), payload, report); err != nil {
		return nil, err
	}
	return report, nil
}
