// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/motorent/rentweb/pkg/adapter/config"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/migration"
	"github.com/motorent/rentweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long: `Initialize the database schema by creating all required
tables and indices in one transaction. The database connection
information are read from the config file. The DDL statements are
idempotent, hence, running init against an already initialized
database is harmless.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err := migration.InitDB(ctx, p); err != nil {
		return fmt.Errorf("initializing DB schema: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initCmd)
}
