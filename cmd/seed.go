package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mediawatch/labeling-api/internal/database"
	"github.com/mediawatch/labeling-api/internal/models"
	"github.com/mediawatch/labeling-api/pkg/config"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with development data",
	Long: `Seed the Media Labeling API database for local development.

Creates the admin account from the seed configuration, a set of
monitoring devices, and synthetic recognition events spread over the
last 24 hours. Safe to run repeatedly; existing rows are kept.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedAdmin(db.DB, cfg); err != nil {
		return err
	}

	deviceIDs, err := seedDevices(db.DB, cfg.Seed.DeviceCount)
	if err != nil {
		return err
	}

	created, err := seedEvents(db.DB, deviceIDs, cfg.Seed.EventCount)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d device(s) and %d event(s)\n", len(deviceIDs), created)
	return nil
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.Seed.AdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		fmt.Printf("Admin account %s already exists\n", cfg.Seed.AdminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.Seed.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	fmt.Printf("Created admin account %s\n", cfg.Seed.AdminEmail)
	return nil
}

func seedDevices(db *gorm.DB, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}

	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		deviceID := fmt.Sprintf("device-%03d", i)
		ids = append(ids, deviceID)

		var existing int64
		if err := db.Model(&models.Device{}).Where("device_id = ?", deviceID).Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to check device %s: %w", deviceID, err)
		}
		if existing > 0 {
			continue
		}

		device := models.Device{DeviceID: deviceID, IsActive: true}
		if err := db.Create(&device).Error; err != nil {
			return nil, fmt.Errorf("failed to create device %s: %w", deviceID, err)
		}
	}
	return ids, nil
}

func seedEvents(db *gorm.DB, deviceIDs []string, count int) (int, error) {
	if count < 1 {
		return 0, nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().Unix()
	created := 0

	for i := 0; i < count; i++ {
		// Spread events over the last 24 hours
		timestamp := now - int64(rng.Intn(24*60*60))
		score := 0.5 + rng.Float64()/2
		imagePath := fmt.Sprintf("/captures/%d.jpg", timestamp)

		event := models.Event{
			ID:        timestamp*1000 + int64(i),
			DeviceID:  deviceIDs[rng.Intn(len(deviceIDs))],
			Timestamp: timestamp,
			Type:      rng.Intn(4),
			ImagePath: &imagePath,
			MaxScore:  &score,
		}

		channelScore := score
		event.Channels = []models.EventChannel{
			{Name: fmt.Sprintf("Channel %d", rng.Intn(20)+1), Score: &channelScore},
		}

		if err := db.Create(&event).Error; err != nil {
			return created, fmt.Errorf("failed to create event: %w", err)
		}
		created++
	}
	return created, nil
}
