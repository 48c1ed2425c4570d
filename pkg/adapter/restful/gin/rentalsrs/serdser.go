package rentalsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
)

type rawCreateRentalReq struct {
	MotorcycleID     string `json:"motorcycle_id" binding:"required,uuid"`
	DeliveryPersonID string `json:"delivery_person_id" binding:"required,uuid"`
	PlanDays         int    `json:"plan_days" binding:"required,gt=0"`
}

type createRentalReq struct {
	MotorcycleID     uuid.UUID
	DeliveryPersonID uuid.UUID
	PlanDays         int
}

func (rs *resource) DserCreateRentalReq(c *gin.Context) *createRentalReq {
	req := &rawCreateRentalReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	val := &createRentalReq{PlanDays: req.PlanDays}
	var err error
	val.MotorcycleID, err = uuid.Parse(req.MotorcycleID)
	serdser.Assert(&errs, err == nil, "motorcycle_id", "Field motorcycle_id is not UUID.")
	val.DeliveryPersonID, err = uuid.Parse(req.DeliveryPersonID)
	serdser.Assert(&errs, err == nil, "delivery_person_id", "Field delivery_person_id is not UUID.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type rawRentalURI struct {
	RentalID string `uri:"rid" binding:"required,uuid"`
}

type rentalURI struct {
	RentalID uuid.UUID
}

func (rs *resource) DserRentalURI(c *gin.Context) *rentalURI {
	req := &rawRentalURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	rid, err := uuid.Parse(req.RentalID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "rid", "Path param rid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &rentalURI{RentalID: rid}
}

type rawSettlementReq struct {
	ReturnDate string `json:"return_date" binding:"required"`
}

type settlementReq struct {
	RentalID   uuid.UUID
	ReturnDate time.Time
}

func (rs *resource) DserSettlementReq(c *gin.Context) *settlementReq {
	uri := rs.DserRentalURI(c)
	if uri == nil {
		return nil
	}
	req := &rawSettlementReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	returnDate, err := serdser.ParseTime(req.ReturnDate)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "return_date", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &settlementReq{
		RentalID:   uri.RentalID,
		ReturnDate: returnDate,
	}
}
