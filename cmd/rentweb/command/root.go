// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the rentweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database schema initialization.
//
//	./rentweb [-c /path/of/main/config.yaml]         # start web server
//	./rentweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/motorent/rentweb/pkg/adapter/config"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/notifsrp"
	"github.com/motorent/rentweb/pkg/adapter/mq/rabbitmq"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/routes"
	"github.com/motorent/rentweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rentweb",
	Short: "A motorcycle rental management web service",
	Long: `A motorcycle rental management web service which registers
motorcycles and delivery persons, agrees tiered-plan rentals between
them, and settles returned rentals with early-return fines or
late-return surcharges. Registered motorcycles are announced over a
RabbitMQ exchange and a consumer records notifications for the
matching registrations. License images are stored on the local disk
and served back by URL.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	events, mqClose, err := connectBroker(ctx, c, p)
	if err != nil {
		return fmt.Errorf("connecting to message broker: %w", err)
	}
	defer mqClose()
	storage, err := c.Storage.NewStorage()
	if err != nil {
		return fmt.Errorf("creating blob storage: %w", err)
	}
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, events, storage); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// connectBroker dials the broker, declares the topology, and starts
// the notifications consumer if it is enabled by the configuration.
func connectBroker(
	ctx context.Context, c *config.Config, p repo.Pool,
) (events *rabbitmq.Publisher, mqClose func(), err error) {
	dialCtx, cancel := context.WithTimeout(
		ctx, time.Duration(*c.MQ.ConnectTimeout),
	)
	defer cancel()
	mq, err := rabbitmq.Connect(dialCtx, c.MQ.AMQPURL())
	if err != nil {
		return nil, nil, err
	}
	t := c.MQ.Topology()
	if err := mq.DeclareTopology(t); err != nil {
		_ = mq.Close()
		return nil, nil, fmt.Errorf("declaring topology: %w", err)
	}
	if c.MQ.Consumer {
		cons := rabbitmq.NewConsumer(mq, t, p, notifsrp.New())
		if err := cons.Run(ctx); err != nil {
			_ = mq.Close()
			return nil, nil, fmt.Errorf("starting consumer: %w", err)
		}
	}
	return rabbitmq.NewPublisher(mq, t), func() { _ = mq.Close() }, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
