package deliveriesrs

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
	"github.com/motorent/rentweb/pkg/core/usecase/deliveriesuc"
)

type rawCreateDeliveryPersonReq struct {
	Name          string `json:"name" binding:"required,max=200"`
	TaxID         string `json:"tax_id" binding:"required,max=18"`
	BirthDate     string `json:"birth_date" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required,max=20"`
	LicenseType   string `json:"license_type" binding:"required,max=3"`
}

func (rs *resource) DserCreateDeliveryPersonReq(c *gin.Context) *deliveriesuc.CreateParams {
	req := &rawCreateDeliveryPersonReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	birthDate, err := serdser.ParseTime(req.BirthDate)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "birth_date", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &deliveriesuc.CreateParams{
		Name:          req.Name,
		TaxID:         req.TaxID,
		BirthDate:     birthDate,
		LicenseNumber: req.LicenseNumber,
		LicenseType:   req.LicenseType,
	}
}

type rawDeliveryPersonURI struct {
	DeliveryPersonID string `uri:"did" binding:"required,uuid"`
}

type deliveryPersonURI struct {
	DeliveryPersonID uuid.UUID
}

func (rs *resource) DserDeliveryPersonURI(c *gin.Context) *deliveryPersonURI {
	req := &rawDeliveryPersonURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	did, err := uuid.Parse(req.DeliveryPersonID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "did", "Path param did is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &deliveryPersonURI{DeliveryPersonID: did}
}

type updateLicenseImageReq struct {
	DeliveryPersonID uuid.UUID
	Image            deliveriesuc.Image

	file multipart.File
}

func (req *updateLicenseImageReq) Close() {
	_ = req.file.Close()
}

func (rs *resource) DserUpdateLicenseImageReq(c *gin.Context) *updateLicenseImageReq {
	uri := rs.DserDeliveryPersonURI(c)
	if uri == nil {
		return nil
	}
	fh, err := c.FormFile("license_image")
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(
			&errs, "license_image",
			"A license_image file part is required.",
		)
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	return &updateLicenseImageReq{
		DeliveryPersonID: uri.DeliveryPersonID,
		Image: deliveriesuc.Image{
			Content:     f,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		},
		file: f,
	}
}
