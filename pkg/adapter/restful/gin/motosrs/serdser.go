package motosrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
)

type rawCreateMotoReq struct {
	Year         int    `json:"year" binding:"required,gt=1900"`
	Model        string `json:"model" binding:"required,max=100"`
	LicensePlate string `json:"license_plate" binding:"required,max=10"`
}

func (rs *resource) DserCreateMotoReq(c *gin.Context) *rawCreateMotoReq {
	req := &rawCreateMotoReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

type rawListMotosReq struct {
	LicensePlate string `form:"license-plate" binding:"omitempty,max=10"`
}

func (rs *resource) DserListMotosReq(c *gin.Context) *rawListMotosReq {
	req := &rawListMotosReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	return req
}

type rawMotoURI struct {
	MotoID string `uri:"mid" binding:"required,uuid"`
}

type motoURI struct {
	MotoID uuid.UUID
}

func (rs *resource) DserMotoURI(c *gin.Context) *motoURI {
	req := &rawMotoURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	mid, err := uuid.Parse(req.MotoID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "mid", "Path param mid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &motoURI{MotoID: mid}
}

type rawUpdatePlateReq struct {
	LicensePlate string `json:"license_plate" binding:"required,max=10"`
}

type updatePlateReq struct {
	MotoID       uuid.UUID
	LicensePlate string
}

func (rs *resource) DserUpdatePlateReq(c *gin.Context) *updatePlateReq {
	uri := rs.DserMotoURI(c)
	if uri == nil {
		return nil
	}
	req := &rawUpdatePlateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &updatePlateReq{
		MotoID:       uri.MotoID,
		LicensePlate: req.LicensePlate,
	}
}
