package ports

import (
	"context"
	"errors"
)

var (
	ErrDuplicateSubscriber = errors.New("subscriber already exists")
	ErrChartNotFound       = errors.New("natal chart not found")
)

// Subscriber is an email recipient of the weekly reading alerts.
type Subscriber struct {
	ID        string
	Email     string
	Sign      string
	Language  string
	CreatedAt string
}

// NatalChart is a user's saved sun/rising combination.
type NatalChart struct {
	ID        string
	Email     string
	Sun       string
	Rising    string
	BirthDate string
	UpdatedAt string
}

type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, email, sign, language string) (Subscriber, error)
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
	SaveChart(ctx context.Context, chart NatalChart) (NatalChart, error)
	ChartByEmail(ctx context.Context, email string) (NatalChart, error)
}
