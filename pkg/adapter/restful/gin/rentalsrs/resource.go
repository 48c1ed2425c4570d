// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rentalsrs realizes the rentals resource, allowing the
// rentals manipulation REST APIs to be accepted and delegated to the
// rentals use cases respectively.
package rentalsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
	"github.com/motorent/rentweb/pkg/core/usecase/rentalsuc"
)

type resource struct {
	rentals *rentalsuc.UseCase
}

// Register instantiates a resource adapting the rentals use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/rentweb/v1/rentals
//     in order to agree a rental of a motorcycle.
//  2. GET request to /api/rentweb/v1/rentals/:rid
//     in order to fetch one rental.
//  3. POST request to /api/rentweb/v1/rentals/:rid/return
//     in order to register a return and settle the rental.
//  4. POST request to /api/rentweb/v1/rentals/:rid/calculate
//     in order to preview a settlement without persisting it.
func Register(r *gin.RouterGroup, rentals *rentalsuc.UseCase) {
	rs := &resource{rentals: rentals}
	r.POST("rentals", rs.CreateRental)
	r.GET("rentals/:rid", rs.GetRental)
	r.POST("rentals/:rid/return", rs.ReturnRental)
	r.POST("rentals/:rid/calculate", rs.CalculateRental)
}

func (rs *resource) CreateRental(c *gin.Context) {
	req := rs.DserCreateRentalReq(c)
	if req == nil {
		return
	}
	rental, err := rs.rentals.Create(
		c, req.MotorcycleID, req.DeliveryPersonID, req.PlanDays,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+rental.ID.String())
	c.JSON(http.StatusCreated, rental)
}

func (rs *resource) GetRental(c *gin.Context) {
	req := rs.DserRentalURI(c)
	if req == nil {
		return
	}
	rental, err := rs.rentals.Get(c, req.RentalID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (rs *resource) ReturnRental(c *gin.Context) {
	req := rs.DserSettlementReq(c)
	if req == nil {
		return
	}
	rental, err := rs.rentals.Return(c, req.RentalID, req.ReturnDate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (rs *resource) CalculateRental(c *gin.Context) {
	req := rs.DserSettlementReq(c)
	if req == nil {
		return
	}
	rental, err := rs.rentals.Calculate(c, req.RentalID, req.ReturnDate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}
