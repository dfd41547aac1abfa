package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pmdash/pmdash/internal/app"
	"github.com/pmdash/pmdash/internal/config"
	"github.com/pmdash/pmdash/internal/database"
	"github.com/pmdash/pmdash/pkg/google"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not load .env file: %v", err)
	}
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cliApp := &cli.App{
		Name:  "pmdash",
		Usage: "product manager dashboard backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./config/application.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"PMDASH_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
			{
				Name:   "google-auth",
				Usage:  "authorize Google Calendar access and store the token",
				Action: googleAuth,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

func migrate(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return err
	}
	log.Info("Database migrations applied")
	return nil
}

func googleAuth(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	oauthConfig, err := google.OAuthConfig(cfg.Google.ClientId, cfg.Google.ClientSecret)
	if err != nil {
		return err
	}

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(c.App.Writer, "Open the following link in your browser and paste the authorization code:\n%v\n", authURL)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("unable to read authorization code: %w", err)
	}
	token, err := google.ExchangeCode(c.Context, oauthConfig, strings.TrimSpace(code))
	if err != nil {
		return err
	}
	if err := google.SaveToken(cfg.Google.TokenFile, token); err != nil {
		return err
	}
	log.Infof("Google token saved to %s", cfg.Google.TokenFile)
	return nil
}
