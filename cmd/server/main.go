package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stride/config"
	"github.com/shashiranjanraj/stride/database/seeders"
	"github.com/shashiranjanraj/stride/internal/server"
	"github.com/shashiranjanraj/stride/pkg/database"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stride",
	Short: "Stride — shoe storefront API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an admin user and a demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		fmt.Println("Seeding database:")
		return seeders.RunAll(ctx)
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered HTTP route",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := server.Routes()
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %-45s %s\n", "METHOD", "PATH", "NAME")
		for _, rt := range routes {
			fmt.Printf("%-8s %-45s %s\n", rt.Method, rt.Path, rt.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(routeListCmd)
}
