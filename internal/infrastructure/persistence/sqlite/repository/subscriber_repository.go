package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starcast/internal/errs"
	"starcast/internal/infrastructure/persistence/sqlite/model"
	"starcast/internal/ports"
)

type SubscriberRepository struct {
	db *gorm.DB
}

var _ ports.SubscriberRepository = (*SubscriberRepository)(nil)

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) CreateSubscriber(ctx context.Context, email, sign, language string) (ports.Subscriber, error) {
	if ctx == nil {
		return ports.Subscriber{}, errors.New("context is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ports.Subscriber{}, errors.New("email is required")
	}

	var existing int64
	if err := r.db.WithContext(ctx).Model(&model.Subscriber{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return ports.Subscriber{}, errs.Wrap(err, "check existing subscriber")
	}
	if existing > 0 {
		return ports.Subscriber{}, ports.ErrDuplicateSubscriber
	}

	row := model.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Sign:      sign,
		Language:  language,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.Subscriber{}, ports.ErrDuplicateSubscriber
		}
		return ports.Subscriber{}, errs.Wrap(err, "insert subscriber")
	}

	return subscriberFromRow(row), nil
}

func (r *SubscriberRepository) ListSubscribers(ctx context.Context) ([]ports.Subscriber, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	var rows []model.Subscriber
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "list subscribers")
	}

	out := make([]ports.Subscriber, 0, len(rows))
	for _, row := range rows {
		out = append(out, subscriberFromRow(row))
	}
	return out, nil
}

func (r *SubscriberRepository) SaveChart(ctx context.Context, chart ports.NatalChart) (ports.NatalChart, error) {
	if ctx == nil {
		return ports.NatalChart{}, errors.New("context is required")
	}

	email := strings.ToLower(strings.TrimSpace(chart.Email))
	if email == "" {
		return ports.NatalChart{}, errors.New("email is required")
	}

	row := model.NatalChart{
		ID:        uuid.NewString(),
		Email:     email,
		Sun:       chart.Sun,
		Rising:    chart.Rising,
		BirthDate: chart.BirthDate,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"sun":        row.Sun,
			"rising":     row.Rising,
			"birth_date": row.BirthDate,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return ports.NatalChart{}, errs.Wrap(err, "upsert natal chart")
	}

	saved, err := r.ChartByEmail(ctx, email)
	if err != nil {
		return ports.NatalChart{}, errs.Wrap(err, "reload natal chart")
	}
	return saved, nil
}

func (r *SubscriberRepository) ChartByEmail(ctx context.Context, email string) (ports.NatalChart, error) {
	if ctx == nil {
		return ports.NatalChart{}, errors.New("context is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var row model.NatalChart
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.NatalChart{}, ports.ErrChartNotFound
		}
		return ports.NatalChart{}, errs.Wrap(err, "query natal chart")
	}

	return ports.NatalChart{
		ID:        row.ID,
		Email:     row.Email,
		Sun:       row.Sun,
		Rising:    row.Rising,
		BirthDate: row.BirthDate,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func subscriberFromRow(row model.Subscriber) ports.Subscriber {
	return ports.Subscriber{
		ID:        row.ID,
		Email:     row.Email,
		Sign:      row.Sign,
		Language:  row.Language,
		CreatedAt: row.CreatedAt,
	}
}
