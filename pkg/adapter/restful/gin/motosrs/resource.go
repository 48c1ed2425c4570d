// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package motosrs realizes the motorcycles resource, allowing the
// motorcycles manipulation REST APIs to be accepted and delegated to
// the motorcycles use cases respectively.
package motosrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
	"github.com/motorent/rentweb/pkg/core/usecase/motosuc"
)

type resource struct {
	motos *motosuc.UseCase
}

// Register instantiates a resource adapting the motorcycles use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/rentweb/v1/motorcycles
//     in order to register a motorcycle.
//  2. GET request to /api/rentweb/v1/motorcycles
//     in order to list motorcycles, optionally filtered by their
//     license plate.
//  3. GET request to /api/rentweb/v1/motorcycles/:mid
//     in order to fetch one motorcycle.
//  4. PATCH request to /api/rentweb/v1/motorcycles/:mid/license-plate
//     in order to replace a license plate.
//  5. DELETE request to /api/rentweb/v1/motorcycles/:mid
//     in order to remove a motorcycle without rentals.
func Register(r *gin.RouterGroup, motos *motosuc.UseCase) {
	rs := &resource{motos: motos}
	r.POST("motorcycles", rs.CreateMoto)
	r.GET("motorcycles", rs.ListMotos)
	r.GET("motorcycles/:mid", rs.GetMoto)
	r.PATCH("motorcycles/:mid/license-plate", rs.UpdateLicensePlate)
	r.DELETE("motorcycles/:mid", rs.DeleteMoto)
}

func (rs *resource) CreateMoto(c *gin.Context) {
	req := rs.DserCreateMotoReq(c)
	if req == nil {
		return
	}
	moto, err := rs.motos.Create(c, req.Year, req.Model, req.LicensePlate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+moto.ID.String())
	c.JSON(http.StatusCreated, moto)
}

func (rs *resource) ListMotos(c *gin.Context) {
	req := rs.DserListMotosReq(c)
	if req == nil {
		return
	}
	motos, err := rs.motos.List(c, req.LicensePlate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, motos)
}

func (rs *resource) GetMoto(c *gin.Context) {
	req := rs.DserMotoURI(c)
	if req == nil {
		return
	}
	moto, err := rs.motos.Get(c, req.MotoID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, moto)
}

func (rs *resource) UpdateLicensePlate(c *gin.Context) {
	req := rs.DserUpdatePlateReq(c)
	if req == nil {
		return
	}
	moto, err := rs.motos.UpdateLicensePlate(c, req.MotoID, req.LicensePlate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, moto)
}

func (rs *resource) DeleteMoto(c *gin.Context) {
	req := rs.DserMotoURI(c)
	if req == nil {
		return
	}
	if err := rs.motos.Remove(c, req.MotoID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
