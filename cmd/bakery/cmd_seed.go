package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/bakery-api/config"
	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/database"
	"github.com/d60-Lab/bakery-api/pkg/logger"
)

var seedOpts struct {
	orders int
	days   int
	batch  int
}

// bakery seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo recipes and randomly dated orders",
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
		return seed(cmd.Context(), db)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.orders, "orders", 500, "number of orders to insert")
	seedCmd.Flags().IntVar(&seedOpts.days, "days", 30, "spread order creation over the last N days")
	seedCmd.Flags().IntVar(&seedOpts.batch, "batch", 200, "insert batch size")
}

var demoRecipes = []struct {
	title string
	price string
}{
	{"Brigadeiro", "2.50"},
	{"Beijinho", "2.50"},
	{"Bolo de cenoura", "45.00"},
	{"Pão de mel", "6.00"},
	{"Torta de limão", "60.00"},
}

var demoCustomers = []string{"Ana", "Bruno", "Carla", "Diego", "Eduarda", "Felipe", "Gabriela", "Heitor"}

func seed(ctx context.Context, db *gorm.DB) error {
	if seedOpts.orders < 0 || seedOpts.days < 1 || seedOpts.batch < 1 {
		return fmt.Errorf("invalid seed options: orders=%d days=%d batch=%d", seedOpts.orders, seedOpts.days, seedOpts.batch)
	}

	recipeSvc := service.NewRecipeService(repository.NewRecipeRepository(db))
	recipes := make([]*model.Recipe, 0, len(demoRecipes))
	for _, r := range demoRecipes {
		created, err := recipeSvc.Create(ctx, service.CreateRecipeInput{Title: r.title, Price: decimal.RequireFromString(r.price)})
		if err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.title, err)
		}
		recipes = append(recipes, created)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	window := time.Duration(seedOpts.days) * 24 * time.Hour

	start := time.Now()
	orders := make([]*model.Order, 0, seedOpts.batch)
	flush := func() error {
		if len(orders) == 0 {
			return nil
		}
		if err := db.WithContext(ctx).Omit("Recipe").CreateInBatches(orders, seedOpts.batch).Error; err != nil {
			return err
		}
		orders = orders[:0]
		return nil
	}

	for i := 0; i < seedOpts.orders; i++ {
		recipe := recipes[rng.Intn(len(recipes))]
		qty := rng.Intn(20) + 1
		created := now.Add(-time.Duration(rng.Int63n(int64(window))))

		o := &model.Order{
			ID:           uuid.NewString(),
			CustomerName: demoCustomers[rng.Intn(len(demoCustomers))],
			Quantity:     qty,
			TotalAmount:  recipe.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
			Status:       model.StatusPending,
			IsDelivered:  rng.Intn(3) == 0,
			RecipeID:     recipe.ID,
			CreatedAt:    created,
		}
		if rng.Intn(2) == 0 {
			o.Status = model.StatusPaid
		}
		if rng.Intn(4) != 0 {
			d := created.Add(time.Duration(rng.Intn(7*24)) * time.Hour)
			o.DeliveryDate = &d
		}
		orders = append(orders, o)
		if len(orders) == seedOpts.batch {
			if err := flush(); err != nil {
				return fmt.Errorf("seed orders: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("seed finished",
		zap.Int("recipes", len(recipes)),
		zap.Int("orders", seedOpts.orders),
		zap.Duration("elapsed", elapsed),
		zap.Float64("orders_per_sec", float64(seedOpts.orders)/elapsed.Seconds()),
	)
	return nil
}
