// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/movrlab/vsweb/pkg/adapter/config"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/initdb"
	"github.com/movrlab/vsweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively. Both create the
required tables in a single transaction and the init-dev action also
fills them with sample vehicles and riders.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file.
Relevant tables will be created (if they do not exist) and filled with
a handful of sample vehicles, their seeded locations, and riders.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
that is, the empty tables which the web server expects. The database
connection information are read from the config file. No changes will
be made to the config file itself.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	return initDB(func(ctx context.Context, s *initdb.Settler) error {
		return s.InitDevSchema(ctx)
	})
}

func initProd(_ *cobra.Command, _ []string) error {
	return initDB(func(ctx context.Context, s *initdb.Settler) error {
		return s.InitProdSchema(ctx)
	})
}

func initDB(f func(context.Context, *initdb.Settler) error) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, initdb.New(tx))
		})
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd, initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
