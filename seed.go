package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	config "github.com/phillip/campaign-hub-go/config"
	controllers "github.com/phillip/campaign-hub-go/controllers"
	models "github.com/phillip/campaign-hub-go/models"
	store "github.com/phillip/campaign-hub-go/store"
	utils "github.com/phillip/campaign-hub-go/utils"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Insert sample campaigns and users",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := utils.NewLogger(cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx := context.Background()

		if err := cfg.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = cfg.Disconnect(context.Background()) }()

		logger.Info("connected to database", zap.String("database", cfg.DBName))

		db := cfg.Database()
		nc, nu, err := seedSamples(ctx, store.NewCampaignStore(db), store.NewUserStore(db), time.Now())
		if err != nil {
			return err
		}

		logger.Info("seed complete", zap.Int("campaigns", nc), zap.Int("users", nu))
		return nil
	},
}

func sampleCampaigns() []models.CampaignInput {
	goal := func(v float64) *float64 { return &v }
	return []models.CampaignInput{
		{
			Title:       "Clean water for Sadr City",
			Description: "Install filtration units in three neighbourhood schools.",
			Goal:        goal(12000),
		},
		{
			Title:       "Winter blankets in Mosul",
			Description: "Distribute blankets and heaters to displaced families.",
			Goal:        goal(8000),
			Location:    []float64{36.3350, 43.1189},
		},
		{
			Title:       "Basra school library",
			Description: "Stock a library for a rebuilt primary school.",
			Goal:        goal(5000),
			Location:    []float64{30.5085, 47.7804},
		},
	}
}

func sampleUsers() []models.UserInput {
	return []models.UserInput{
		{Name: "Site Admin", Email: "admin@example.com", Role: "admin"},
		{Name: "Layla Hassan", Email: "layla@example.com"},
		{Name: "Omar Karim", Email: "omar@example.com", Role: "volunteer"},
	}
}

// seedSamples inserts the sample data, spacing timestamps one minute apart so
// listings come back in a stable order.
func seedSamples(ctx context.Context, campaigns controllers.CampaignRepository, users controllers.UserRepository, now time.Time) (int, int, error) {
	inputs := sampleCampaigns()
	for i, in := range inputs {
		at := now.Add(time.Duration(i-len(inputs)) * time.Minute)
		if _, err := campaigns.Create(ctx, models.NewCampaign(in, at)); err != nil {
			return i, 0, fmt.Errorf("seed campaign %q: %w", in.Title, err)
		}
	}

	people := sampleUsers()
	for i, in := range people {
		at := now.Add(time.Duration(i-len(people)) * time.Minute)
		if _, err := users.Create(ctx, models.NewUser(in, at)); err != nil {
			return len(inputs), i, fmt.Errorf("seed user %q: %w", in.Name, err)
		}
	}

	return len(inputs), len(people), nil
}
