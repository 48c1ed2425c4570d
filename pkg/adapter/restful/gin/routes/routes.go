// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/deliveriesrp"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/motosrp"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/rentalsrp"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/deliveriesrs"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/motosrs"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/rentalsrs"
	"github.com/motorent/rentweb/pkg/core/repo"
	"github.com/motorent/rentweb/pkg/core/usecase/deliveriesuc"
	"github.com/motorent/rentweb/pkg/core/usecase/motosuc"
	"github.com/motorent/rentweb/pkg/core/usecase/rentalsuc"
)

// Register instantiates the relevant repositories and use cases. The
// p connections pool is passed to the use case instances, so they may
// acquire/release connections and transactions on demand. These
// connections/transactions will be passed to the repositories later in
// order to run relevant queries on them and accomplish those use
// cases. Each use case package is named like rentalsuc and each
// repository package is named like rentalsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like rentalsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The events publisher may be nil in order to disable registration
// announcements; the storage service is required for license images.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool,
	events motosuc.EventPublisher, storage deliveriesuc.Storage,
) error {
	motosRepo := motosrp.New()
	deliveriesRepo := deliveriesrp.New()
	rentalsRepo := rentalsrp.New()

	motosUseCase := motosuc.New(p, motosRepo, rentalsRepo, events)
	deliveriesUseCase := deliveriesuc.New(p, deliveriesRepo, storage)
	rentalsUseCase, err := rentalsuc.New(
		p, rentalsRepo, motosRepo, deliveriesRepo,
	)
	if err != nil {
		return fmt.Errorf("creating rentals use case: %w", err)
	}

	r := e.Group("/api/rentweb/v1")
	motosrs.Register(r, motosUseCase)
	deliveriesrs.Register(r, deliveriesUseCase)
	rentalsrs.Register(r, rentalsUseCase)
	return nil
}
