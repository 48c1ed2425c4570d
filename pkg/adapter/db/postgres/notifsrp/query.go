package notifsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/core/model"
)

type gNotification struct {
	NID              uuid.UUID `gorm:"primaryKey;type:uuid;column:nid"`
	MotorcycleID     uuid.UUID `gorm:"type:uuid"`
	Year             int
	Model            string
	LicensePlate     string
	NotificationDate time.Time
}

func (gn *gNotification) TableName() string {
	return "motorcycle_notifications"
}

func fromModel(n *model.MotorcycleNotification) *gNotification {
	return &gNotification{
		NID:              n.ID,
		MotorcycleID:     n.MotorcycleID,
		Year:             n.Year,
		Model:            n.Model,
		LicensePlate:     n.LicensePlate,
		NotificationDate: n.NotificationDate,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, n *model.MotorcycleNotification) error {
	gdb := q.GORM(ctx)
	if err := gdb.Create(fromModel(n)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}
