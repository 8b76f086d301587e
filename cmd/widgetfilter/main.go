/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command widgetfilter runs filter form field queries from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/suparena/widgetfilter"
	"github.com/suparena/widgetfilter/config"
)

var (
	configPath string
	widgetID   string
	entityType string
	dsn        string
)

var rootCmd = &cobra.Command{
	Use:           "widgetfilter",
	Short:         "Query the entities offered by filter widgets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the entities a filter widget offers for an entity type",
	Example: `  widgetfilter query --config widgetfilter.yaml --widget category-filter --entity 'App\Entity\Product'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		results, err := svc.Query(cmd.Context(), widgetID, entityType)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), results)
	},
}

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List the configured widgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		widgets, err := svc.ListWidgets(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), widgets)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), widgetfilter.GetVersionInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database DSN, overrides the configuration")

	queryCmd.Flags().StringVarP(&widgetID, "widget", "w", "", "filter widget ID")
	queryCmd.Flags().StringVarP(&entityType, "entity", "e", "", "target entity type")
	_ = queryCmd.MarkFlagRequired("widget")
	_ = queryCmd.MarkFlagRequired("entity")

	rootCmd.AddCommand(queryCmd, widgetsCmd, versionCmd)
}

func openService(cmd *cobra.Command) (*widgetfilter.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dsn != "" {
		cfg.Database.DSN = dsn
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return widgetfilter.New(cmd.Context(), cfg, widgetfilter.WithLogger(logger))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
