package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Event is a community clean-up event residents can join for coins.
type Event struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status,omitempty"`
	Address           string     `json:"address,omitempty"`
	Latitude          float64    `json:"latitude,omitempty"`
	Longitude         float64    `json:"longitude,omitempty"`
	CoverURL          string     `json:"coverUrl,omitempty"`
	CoinReward        int        `json:"coinReward,omitempty"`
	ParticipantsCount int        `json:"participantsCount,omitempty"`
	StartsAt          *time.Time `json:"startsAt,omitempty"`
	EndsAt            *time.Time `json:"endsAt,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// EventParticipant is one resident signed up for an event.
type EventParticipant struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Status    string     `json:"status,omitempty"`
	JoinedAt  *time.Time `json:"joinedAt,omitempty"`
}

// EventPayload creates or updates an event.
type EventPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Latitude    float64    `json:"latitude,omitempty"`
	Longitude   float64    `json:"longitude,omitempty"`
	CoverURL    string     `json:"coverUrl,omitempty"`
	CoinReward  int        `json:"coinReward,omitempty"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
}

func (p EventPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Length(0, 5000)),
		validation.Field(&p.CoinReward, validation.Min(0)),
		validation.Field(&p.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&p.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// EventFilter narrows event listings.
type EventFilter struct {
	Status string
	Search string
}

// Values encodes the filter as query parameters, dropping empty fields.
func (f *EventFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

// EventService binds the event endpoints, both the public listing and the
// operator management surface.
type EventService struct {
	client *Client
	logger Logger
}

func NewEventService(c *Client) *EventService {
	return &EventService{client: c, logger: defLogger{}}
}

func (s *EventService) WithLogger(logger Logger) *EventService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *EventService) List(ctx context.Context, filter *EventFilter) ([]Event, error) {
	events := []Event{}
	if err := s.client.Get(ctx, "/events", filter.Values(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) Details(ctx context.Context, eventID int64) (*Event, error) {
	event := &Event{}
	if err := s.client.Get(ctx, fmt.Sprintf("/events/%d", eventID), nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, payload EventPayload) (*Event, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid event payload")
	}

	event := &Event{}
	if err := s.client.Post(ctx, "/events", payload, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, eventID int64, payload EventPayload) (*Event, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid event payload")
	}

	event := &Event{}
	if err := s.client.Patch(ctx, fmt.Sprintf("/events/%d", eventID), payload, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Participants(ctx context.Context, eventID int64) ([]EventParticipant, error) {
	participants := []EventParticipant{}
	if err := s.client.Get(ctx, fmt.Sprintf("/events/%d/participants", eventID), nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// Join signs the current user up for an event.
func (s *EventService) Join(ctx context.Context, eventID int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/events/%d/join", eventID), nil, nil)
}

// Cancel withdraws the current user's participation.
func (s *EventService) Cancel(ctx context.Context, eventID int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/events/%d/cancel", eventID), nil, nil)
}

// CheckIn marks a participant as present (operator action).
func (s *EventService) CheckIn(ctx context.Context, eventID, participantID int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/events/%d/participants/%d/check-in", eventID, participantID), nil, nil)
}

// Complete marks a participant's work as done, releasing the coin reward.
func (s *EventService) Complete(ctx context.Context, eventID, participantID int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/events/%d/participants/%d/complete", eventID, participantID), nil, nil)
}
