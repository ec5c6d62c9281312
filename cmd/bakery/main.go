// Command bakery 面包店订单管理服务
//
// @title Bakery API
// @version 1.0.0
// @description Order management for a bakery: recipes, orders, deliveries and sales reports.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bakery",
	Short:         "Bakery order-management API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(seedCmd)
}
