package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/api"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/pkg/database"
	"github.com/d60-Lab/bakery-api/pkg/logger"
)

// bakery migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if _, err := logger.Init(cfg.Log.Level, cfg.App.Env); err != nil {
			return err
		}
		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		fmt.Println("migrations applied")
		return nil
	},
}

// bakery routes
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gin.SetMode(gin.ReleaseMode)
		// 仅构建路由表，不连接数据库
		r := api.NewRouter(cfg, nil)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tHANDLER")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Handler)
		}
		return w.Flush()
	},
}
