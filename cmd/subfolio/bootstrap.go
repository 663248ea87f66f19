package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/subfolio-dev/subfolio/db"
	"github.com/subfolio-dev/subfolio/internal/auth"
	"github.com/subfolio-dev/subfolio/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	bootstrapName     string
	bootstrapEmail    string
	bootstrapPassword string
)

var errUserExists = errors.New("a user with this email already exists")

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed an operator account",
	Long: `Creates a verified account so an operator can sign in to the dashboard
before self-service registration is used. Refuses to overwrite an existing
account with the same email.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ConnectDatabase(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		if err := db.MigrateDatabase(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		user, err := bootstrapUser(cmd.Context(), db.DB, bootstrapName, bootstrapEmail, bootstrapPassword)
		if err != nil {
			return err
		}

		logger.Info("operator account created", zap.String("user_id", user.ID), zap.String("email", user.Email))
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapName, "name", "", "display name")
	bootstrapCmd.Flags().StringVar(&bootstrapEmail, "email", "", "login email")
	bootstrapCmd.Flags().StringVar(&bootstrapPassword, "password", "", "login password (min 8 characters)")

	_ = bootstrapCmd.MarkFlagRequired("email")
	_ = bootstrapCmd.MarkFlagRequired("password")
}

func bootstrapUser(ctx context.Context, conn *gorm.DB, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	var existing models.User
	err := conn.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verified := time.Now()
	user := models.User{
		Name:          strings.TrimSpace(name),
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: &verified,
	}

	if err := conn.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}
