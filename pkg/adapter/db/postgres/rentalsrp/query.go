package rentalsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// activeRentalIndex is a partial unique index over the open rentals,
// so concurrent creations for one delivery person cannot both commit.
const activeRentalIndex = "uq_rentals_active_delivery_person"

const uniqueViolationCode = "23505"

type gRental struct {
	RID              uuid.UUID `gorm:"primaryKey;type:uuid;column:rid"`
	MotorcycleID     uuid.UUID `gorm:"type:uuid"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid"`
	StartDate        time.Time
	EndDate          time.Time
	ExpectedEndDate  time.Time
	PlanDays         int
	DailyRate        decimal.Decimal `gorm:"type:decimal(10,2)"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(10,2)"`
	ReturnDate       *time.Time
	FineAmount       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	AdditionalAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt        time.Time
}

func (gr *gRental) TableName() string {
	return "rentals"
}

func (gr *gRental) Model() (*model.Rental, error) {
	plan, err := model.ParseRentalPlan(gr.PlanDays)
	if err != nil {
		return nil, fmt.Errorf("parsing stored plan: %w", err)
	}
	r := &model.Rental{
		ID:               gr.RID,
		MotorcycleID:     gr.MotorcycleID,
		DeliveryPersonID: gr.DeliveryPersonID,
		StartDate:        model.NormalizeUTC(gr.StartDate),
		EndDate:          model.NormalizeUTC(gr.EndDate),
		ExpectedEndDate:  model.NormalizeUTC(gr.ExpectedEndDate),
		Plan:             plan,
		DailyRate:        gr.DailyRate,
		TotalAmount:      gr.TotalAmount,
		FineAmount:       gr.FineAmount,
		AdditionalAmount: gr.AdditionalAmount,
		CreatedAt:        model.NormalizeUTC(gr.CreatedAt),
	}
	if gr.ReturnDate != nil {
		rd := model.NormalizeUTC(*gr.ReturnDate)
		r.ReturnDate = &rd
	}
	return r, nil
}

func fromModel(r *model.Rental) *gRental {
	return &gRental{
		RID:              r.ID,
		MotorcycleID:     r.MotorcycleID,
		DeliveryPersonID: r.DeliveryPersonID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ExpectedEndDate:  r.ExpectedEndDate,
		PlanDays:         r.Plan.Days(),
		DailyRate:        r.DailyRate,
		TotalAmount:      r.TotalAmount,
		ReturnDate:       r.ReturnDate,
		FineAmount:       r.FineAmount,
		AdditionalAmount: r.AdditionalAmount,
		CreatedAt:        r.CreatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Rental) error {
	gdb := q.GORM(ctx)
	if err := gdb.Create(fromModel(r)).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == uniqueViolationCode &&
			pgErr.ConstraintName == activeRentalIndex {
			return cerr.BadRequest(fmt.Errorf(
				"the delivery person already has an active rental: %w", err,
			))
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, rid uuid.UUID) (*model.Rental, error) {
	gdb := q.GORM(ctx)
	var grs []gRental
	if err := gdb.Where("rid=?", rid).Limit(1).Find(&grs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(grs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return grs[0].Model()
}

// Update persists the settlement columns. The nullable columns are
// listed explicitly, so a nil fine or additional amount nulls the
// stored value instead of being skipped as a zero field.
func Update[Q postgres.Queryer](ctx context.Context, q Q, r *model.Rental) (*model.Rental, error) {
	gdb := q.GORM(ctx)
	var grs []gRental
	gdb.Model(&grs).Clauses(clause.Returning{}).Select(
		"end_date", "total_amount",
		"return_date", "fine_amount", "additional_amount",
	).Where(
		"rid=?", r.ID,
	).Updates(gRental{
		EndDate:          r.EndDate,
		TotalAmount:      r.TotalAmount,
		ReturnDate:       r.ReturnDate,
		FineAmount:       r.FineAmount,
		AdditionalAmount: r.AdditionalAmount,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(grs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return grs[0].Model()
}

func GetActiveByDeliveryPerson[Q postgres.Queryer](ctx context.Context, q Q, did uuid.UUID) (*model.Rental, error) {
	gdb := q.GORM(ctx)
	var grs []gRental
	err := gdb.Where(
		"delivery_person_id=? AND return_date IS NULL", did,
	).Order("created_at DESC").Limit(1).Find(&grs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(grs) == 0 {
		return nil, nil
	}
	return grs[0].Model()
}

func ExistsByMotorcycle[Q postgres.Queryer](ctx context.Context, q Q, mid uuid.UUID) (bool, error) {
	gdb := q.GORM(ctx).Model(&gRental{}).Where("motorcycle_id=?", mid)
	var n int64
	if err := gdb.Count(&n).Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}
