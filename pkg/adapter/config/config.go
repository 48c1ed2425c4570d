// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the rentweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be accumulated and validated in another
// (possibly non-exported) config struct (or directly in the relevant
// end-component such as a UseCase instance).
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/motorent/rentweb/pkg/adapter/config/settings"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/adapter/mq/rabbitmq"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin"
	"github.com/motorent/rentweb/pkg/adapter/storage/local"
	"github.com/motorent/rentweb/pkg/core/repo"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	MQ       MQ       // RabbitMQ broker connection settings
	Storage  Storage  // license images blob storage settings
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.Gin.ValidateAndNormalize()
	if err := c.MQ.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("mq: %w", err)
	}
	if err := c.Storage.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like rentweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// The .pgpass file in the d.PassDir folder is checked which should
// conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the role name which is
// specified by the `r` argument and the password value which is read
// from the given `path` file. Returned URL has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines which should conform with the
// pgpass files format.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Database instance.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("host is required")
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.PassDir == "" {
		return fmt.Errorf("pass-dir is required")
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill the missing ones with their
// default values.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// ValidateAndNormalize replaces missing settings with their default
// values, enabling both middlewares.
func (g *Gin) ValidateAndNormalize() {
	t := true
	if g.Logger == nil {
		g.Logger = &t
	}
	if g.Recovery == nil {
		g.Recovery = &t
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// MQ contains the message broker related configuration settings.
type MQ struct {
	Host string // domain name or IP address of the broker
	Port int    // port number of the broker
	User string // broker user name
	Pass string // broker password

	Exchange   string // name of the registration events exchange
	Queue      string // name of the notifications queue
	RoutingKey string `yaml:"routing-key"`

	// Consumer indicates whether this process should consume
	// registration events and store notifications, in addition to
	// publishing them.
	Consumer bool

	// ConnectTimeout bounds the initial broker connection attempts,
	// including their retries.
	ConnectTimeout *settings.Duration `yaml:"connect-timeout"`
}

// ValidateAndNormalize validates the broker settings and replaces the
// missing ones with their default values.
func (m *MQ) ValidateAndNormalize() error {
	if m.Host == "" {
		return fmt.Errorf("host is required")
	}
	if m.Port == 0 {
		m.Port = 5672
	}
	if m.User == "" {
		return fmt.Errorf("user is required")
	}
	if m.Exchange == "" {
		m.Exchange = "motorent.events"
	}
	if m.Queue == "" {
		m.Queue = "motorcycle.registered"
	}
	if m.RoutingKey == "" {
		m.RoutingKey = m.Queue
	}
	if m.ConnectTimeout == nil {
		d := settings.Duration(time.Minute)
		m.ConnectTimeout = &d
	}
	return nil
}

// AMQPURL returns the broker connection URL embedding the host, port,
// user name, and password value from the `m` settings.
func (m MQ) AMQPURL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(m.User, m.Pass),
		Host:   fmt.Sprintf("%s:%d", m.Host, m.Port),
		Path:   "/",
	}
	return u.String()
}

// Topology returns the broker objects which are named by the `m`
// settings.
func (m MQ) Topology() rabbitmq.Topology {
	return rabbitmq.Topology{
		Exchange:   m.Exchange,
		Queue:      m.Queue,
		RoutingKey: m.RoutingKey,
	}
}

// Storage contains the blob storage related configuration settings.
type Storage struct {
	BasePath string `yaml:"base-path"` // local directory for the blobs
	BaseURL  string `yaml:"base-url"`  // public URL prefix of the blobs
}

// ValidateAndNormalize validates the storage settings.
func (s *Storage) ValidateAndNormalize() error {
	if s.BasePath == "" {
		return fmt.Errorf("base-path is required")
	}
	if s.BaseURL == "" {
		return fmt.Errorf("base-url is required")
	}
	return nil
}

// NewStorage instantiates a local disk storage based on the `s`
// settings.
func (s Storage) NewStorage() (*local.Storage, error) {
	return local.New(s.BasePath, s.BaseURL)
}
