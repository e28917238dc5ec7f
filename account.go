package client

import (
	"context"
	"time"
)

// Notification is one entry in the user's notification feed.
type Notification struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CoinTransaction is one incentive-points ledger entry.
type CoinTransaction struct {
	ID        int64      `json:"id"`
	Amount    int        `json:"amount"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AccountService binds the signed-in user's feed endpoints.
type AccountService struct {
	client *Client
}

func NewAccountService(c *Client) *AccountService {
	return &AccountService{client: c}
}

func (s *AccountService) Notifications(ctx context.Context) ([]Notification, error) {
	notifications := []Notification{}
	if err := s.client.Get(ctx, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *AccountService) CoinsHistory(ctx context.Context) ([]CoinTransaction, error) {
	history := []CoinTransaction{}
	if err := s.client.Get(ctx, "/coins/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
