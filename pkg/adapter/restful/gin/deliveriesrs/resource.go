// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package deliveriesrs realizes the delivery persons resource,
// allowing the delivery persons manipulation REST APIs to be accepted
// and delegated to the delivery persons use cases respectively.
package deliveriesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/serdser"
	"github.com/motorent/rentweb/pkg/core/usecase/deliveriesuc"
)

type resource struct {
	deliveries *deliveriesuc.UseCase
}

// Register instantiates a resource adapting the delivery persons use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/rentweb/v1/delivery-persons
//     in order to register a delivery person.
//  2. GET request to /api/rentweb/v1/delivery-persons/:did
//     in order to fetch one delivery person.
//  3. PUT request to /api/rentweb/v1/delivery-persons/:did/license-image
//     in order to store or replace a license image.
func Register(r *gin.RouterGroup, deliveries *deliveriesuc.UseCase) {
	rs := &resource{deliveries: deliveries}
	r.POST("delivery-persons", rs.CreateDeliveryPerson)
	r.GET("delivery-persons/:did", rs.GetDeliveryPerson)
	r.PUT("delivery-persons/:did/license-image", rs.UpdateLicenseImage)
}

func (rs *resource) CreateDeliveryPerson(c *gin.Context) {
	params := rs.DserCreateDeliveryPersonReq(c)
	if params == nil {
		return
	}
	dp, err := rs.deliveries.Create(c, *params)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+dp.ID.String())
	c.JSON(http.StatusCreated, dp)
}

func (rs *resource) GetDeliveryPerson(c *gin.Context) {
	req := rs.DserDeliveryPersonURI(c)
	if req == nil {
		return
	}
	dp, err := rs.deliveries.Get(c, req.DeliveryPersonID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}

func (rs *resource) UpdateLicenseImage(c *gin.Context) {
	req := rs.DserUpdateLicenseImageReq(c)
	if req == nil {
		return
	}
	defer req.Close()
	dp, err := rs.deliveries.UpdateLicenseImage(
		c, req.DeliveryPersonID, req.Image,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}
