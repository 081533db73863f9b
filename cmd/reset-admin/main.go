package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/coilbill-backend/internal/admins"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/angelmondragon/coilbill-backend/pkg/security"
)

const generatedPasswordLength = 16

// adminEnv is the fallback when flags are omitted.
type adminEnv struct {
	Username string `envconfig:"ADMIN_USERNAME"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

func main() {
	var (
		username string
		password string
		generate bool
	)
	flag.StringVar(&username, "username", "", "admin username (or ADMIN_USERNAME)")
	flag.StringVar(&username, "u", "", "shorthand for -username")
	flag.StringVar(&password, "password", "", "new password (or ADMIN_PASSWORD)")
	flag.StringVar(&password, "p", "", "shorthand for -password")
	flag.BoolVar(&generate, "generate", false, "generate a random password and print it")
	flag.Parse()

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "reset-admin"})

	_ = godotenv.Load()

	var fromEnv adminEnv
	if err := envconfig.Process("", &fromEnv); err != nil {
		logg.Error(ctx, "failed to read admin env", err)
		os.Exit(1)
	}
	if username == "" {
		username = fromEnv.Username
	}
	if password == "" {
		password = fromEnv.Password
	}

	if password == "" && generate {
		generated, err := security.GenerateTempPassword(generatedPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
		password = generated
		fmt.Printf("Generated password: %s\n", password)
	}

	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Use -username <name> -password <pass> or set ADMIN_USERNAME and ADMIN_PASSWORD in env.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "reset-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Console:     cfg.App.ConsoleLogs(),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	admin, created, err := admins.ResetCredentials(ctx, admins.NewRepository(dbClient), username, password, cfg.Password)
	if err != nil {
		logg.Error(logg.WithField(ctx, "username", username), "failed to reset admin", err)
		os.Exit(1)
	}

	if created {
		fmt.Printf("Created admin user: %s\n", admin.Username)
		return
	}
	fmt.Printf("Updated password for admin user: %s\n", admin.Username)
}
