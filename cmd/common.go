package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/BrunoTulio/safesync/internal/app"
	"github.com/BrunoTulio/safesync/internal/auth"
	"github.com/BrunoTulio/safesync/internal/backup"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/lock"
	"github.com/BrunoTulio/safesync/internal/logging"
	"github.com/BrunoTulio/safesync/internal/notify"
	"github.com/BrunoTulio/safesync/internal/retention"
	"github.com/BrunoTulio/safesync/internal/scheduler"
	"github.com/BrunoTulio/safesync/internal/store"
	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

// loadEnvIfExists exports ./.env into the process environment so its
// SAFESYNC_*, SMTP_* and similar keys act as config overrides. The AWS
// credentials are skipped; they only ever reach the aws child process.
func loadEnvIfExists() {
	envFile := ".env"

	if _, err := os.Stat(envFile); err != nil {
		return
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		log.Warnf("⚠️  Failed to load .env: %v", err)
		return
	}

	for key, value := range values {
		switch key {
		case config.KeyAccessKeyID, config.KeySecretAccessKey, config.KeyBucketName:
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, value)
	}

	log.Debug("🔧 Loaded .env file (development mode)")
}

func loadConfigOrFail() (*config.Config, error) {
	loadEnvIfExists()

	if cfgFile == "" {
		cfgFile = "./safesync.yaml"
	}

	var (
		cfg *config.Config
		err error
	)

	if utils.FileExists(cfgFile) {
		cfg, err = config.LoadFromYAML(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load YAML config: %w", err)
		}
	} else {
		log.Debug("📄 Config file not found, using environment variables")
		cfg, err = config.LoadFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from ENV: %w", err)
		}
	}

	utils.InitTimezone(cfg.MustLocation(), utils.DefaultTimeFormat)

	// --log-level wins over the config file when given explicitly.
	if !rootCmd.PersistentFlags().Changed("log-level") && cfg.LogLevel != "" {
		log = logging.New(cfg.LogLevel)
	}

	return cfg, nil
}

// buildService loads the config and wires every collaborator. Secrets
// are read once here.
func buildService() (*app.Service, *config.Config, *config.Secrets) {
	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	secrets := config.NewSecrets(cfg.AWS.EnvFile, os.Getenv(config.PassphraseEnv))
	if _, err := secrets.Reload(); err != nil {
		log.Warnf("⚠️  Failed to load secrets from %s: %v", cfg.AWS.EnvFile, err)
	}

	scripts := store.NewWithOptions(log, store.WithConfig(cfg))

	svc := app.New(log, app.Deps{
		Scripts: scripts,
		Tasks:   scheduler.NewWithOptions(log, scheduler.WithConfig(cfg)),
		Runner: backup.NewWithFnOptions(log, scripts,
			backup.WithConfig(cfg),
			backup.WithLocker(lock.New(cfg.Execution.LockFile)),
			backup.WithEnv(func() []string { return secrets.Credentials().Env() }),
		),
		Checker:  auth.New(log, cfg.AWS.CLI),
		Secrets:  secrets,
		Notifier: createNotifierService(cfg),
		Pruner:   retention.NewWithOptions(log, scripts, retention.WithConfig(cfg)),
	})

	return svc, cfg, secrets
}

func createNotifierService(cfg *config.Config) notify.Notifier {
	notifierService := notify.NewMultiNotifier(cfg.Notification.SuccessEnabled, cfg.Notification.ErrorEnabled, log)
	if cfg.IsNotifyMail() {
		notifierService.AddNotifier(notify.NewMail(notify.MailConfig{
			Host:       cfg.Notification.SMTPServer,
			Port:       cfg.Notification.SMTPPort,
			Username:   cfg.Notification.SMTPUser,
			Password:   cfg.Notification.SMTPPassword,
			Recipients: cfg.Notification.Emails,
			From:       cfg.Notification.EmailFrom,
			Auth:       cfg.Notification.SMTPAuth,
			TLS:        cfg.Notification.SMTPTLS,
		}, log))
	}

	if cfg.IsNotifyDiscord() {
		notifierService.AddNotifier(notify.NewDiscord(
			cfg.Notification.DiscordWebhookURL,
			log,
		))
	}

	if cfg.IsNotifyTelegram() {
		notifierService.AddNotifier(notify.NewTelegramNotifier(
			cfg.Notification.TelegramBotToken,
			cfg.Notification.TelegramChatID,
			log,
		))
	}

	if notifierService.Len() == 0 {
		return nil
	}

	return notifierService
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func confirm(cmd *cobra.Command, message string) bool {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return true
	}

	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		log.Debugf("prompt aborted: %v", err)
		return false
	}
	return ok
}

// readLines reads one entry per line, skipping blanks and # comments.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
