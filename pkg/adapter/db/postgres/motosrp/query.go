package motosrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gMotorcycle struct {
	MID          uuid.UUID `gorm:"primaryKey;type:uuid;column:mid"`
	Year         int
	ModelName    string `gorm:"column:model"`
	LicensePlate string
	CreatedAt    time.Time
}

func (gm *gMotorcycle) TableName() string {
	return "motorcycles"
}

func (gm *gMotorcycle) Model() *model.Motorcycle {
	return &model.Motorcycle{
		ID:           gm.MID,
		Year:         gm.Year,
		Model:        gm.ModelName,
		LicensePlate: gm.LicensePlate,
		CreatedAt:    model.NormalizeUTC(gm.CreatedAt),
	}
}

func fromModel(m *model.Motorcycle) *gMotorcycle {
	return &gMotorcycle{
		MID:          m.ID,
		Year:         m.Year,
		ModelName:    m.Model,
		LicensePlate: m.LicensePlate,
		CreatedAt:    m.CreatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, m *model.Motorcycle) error {
	gdb := q.GORM(ctx)
	if err := gdb.Create(fromModel(m)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, plateFilter string) ([]*model.Motorcycle, error) {
	gdb := q.GORM(ctx)
	var gms []gMotorcycle
	gdb = gdb.Order("created_at")
	if plateFilter != "" {
		gdb = gdb.Where("license_plate=?", plateFilter)
	}
	if err := gdb.Find(&gms).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ms := make([]*model.Motorcycle, 0, len(gms))
	for i := range gms {
		ms = append(ms, gms[i].Model())
	}
	return ms, nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, mid uuid.UUID) (*model.Motorcycle, error) {
	gdb := q.GORM(ctx)
	var gms []gMotorcycle
	if err := gdb.Where("mid=?", mid).Limit(1).Find(&gms).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gms); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gms[0].Model(), nil
}

func UpdateLicensePlate[Q postgres.Queryer](ctx context.Context, q Q, mid uuid.UUID, plate string) (*model.Motorcycle, error) {
	gdb := q.GORM(ctx)
	var gms []gMotorcycle
	gdb.Model(&gms).Clauses(clause.Returning{}).Select(
		"license_plate",
	).Where(
		"mid=?", mid,
	).Updates(gMotorcycle{
		LicensePlate: plate,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gms); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gms[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, mid uuid.UUID) error {
	gdb := q.GORM(ctx)
	res := gdb.Where("mid=?", mid).Delete(&gMotorcycle{})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

func PlateExists[Q postgres.Queryer](ctx context.Context, q Q, plate string, exclude uuid.UUID) (bool, error) {
	gdb := q.GORM(ctx).Model(&gMotorcycle{}).Where("license_plate=?", plate)
	if exclude != uuid.Nil {
		gdb = gdb.Where("mid<>?", exclude)
	}
	var n int64
	if err := gdb.Count(&n).Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}
