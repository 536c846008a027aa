package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BrunoTulio/logr"
)

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.validateTimezone(); err != nil {
		return fmt.Errorf("timezone config: %w", err)
	}

	if err := c.validateScripts(); err != nil {
		return fmt.Errorf("scripts config: %w", err)
	}

	if err := c.validateExecution(); err != nil {
		return fmt.Errorf("execution config: %w", err)
	}

	if err := c.validateTools(); err != nil {
		return fmt.Errorf("tools config: %w", err)
	}

	if err := c.validateNotification(); err != nil {
		return fmt.Errorf("notify config: %w", err)
	}

	return nil
}

// validateTimezone checks if the timezone is valid
func (c *Config) validateTimezone() error {
	if c.Timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}

	_, err := c.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}

	return nil
}

func (c *Config) validateScripts() error {
	sc := c.Scripts

	if strings.TrimSpace(sc.Dir) == "" {
		return fmt.Errorf("SAFESYNC_SCRIPTS_DIR is required")
	}

	if strings.Contains(sc.Dir, "..") {
		return fmt.Errorf("SAFESYNC_SCRIPTS_DIR cannot contain '..'")
	}

	hasRetentionDays := sc.Retention.HasRetentionDays()
	hasMaxScripts := sc.Retention.HasMaxScripts()

	if hasRetentionDays && hasMaxScripts {
		return fmt.Errorf("cannot use both RETENTION_DAYS and SCRIPT_LIMIT simultaneously, choose one")
	}

	if hasRetentionDays {
		if *sc.Retention.RetentionDays < 1 {
			return fmt.Errorf("RETENTION_DAYS must be >= 1, got %d", *sc.Retention.RetentionDays)
		}
		if *sc.Retention.RetentionDays > 3650 {
			logr.Warnf("RETENTION_DAYS is very high (%d days). Are you sure?", *sc.Retention.RetentionDays)
		}
	}

	if hasMaxScripts && *sc.Retention.MaxScripts < 1 {
		return fmt.Errorf("SCRIPT_LIMIT must be >= 1, got %d", *sc.Retention.MaxScripts)
	}

	return nil
}

func (c *Config) validateExecution() error {
	if len(c.Execution.Shell) == 0 || strings.TrimSpace(c.Execution.Shell[0]) == "" {
		return fmt.Errorf("SAFESYNC_SHELL is required")
	}

	if c.Execution.Timeout < 0 {
		return fmt.Errorf("SAFESYNC_RUN_TIMEOUT must be >= 0, got %d", c.Execution.Timeout)
	}

	return nil
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Scheduler.Binary) == "" {
		return fmt.Errorf("SAFESYNC_SCHTASKS is required")
	}

	if strings.TrimSpace(c.AWS.CLI) == "" {
		return fmt.Errorf("SAFESYNC_AWS_CLI is required")
	}

	return nil
}

func (c *Config) validateNotification() error {
	notif := c.Notification

	if !notif.IsMails() && notif.DiscordWebhookURL == "" && notif.TelegramBotToken == "" {
		return nil
	}

	if notif.IsMails() {
		for _, email := range notif.Emails {
			if !isValidEmail(email) {
				return fmt.Errorf("NOTIFICATION_EMAIL has invalid format: %s", email)
			}
		}

		if notif.SMTPServer == "" {
			return fmt.Errorf("SMTP_SERVER is required when NOTIFICATION_EMAIL is set")
		}

		if notif.SMTPPort < 1 || notif.SMTPPort > 65535 {
			return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", notif.SMTPPort)
		}

		validSMTPPorts := map[int]bool{25: true, 465: true, 587: true, 2525: true}
		if !validSMTPPorts[notif.SMTPPort] {
			logr.Warnf("SMTP_PORT=%d is unusual. Common ports are 25, 465, 587, 2525", notif.SMTPPort)
		}

		if notif.EmailFrom != "" && !isValidEmail(notif.EmailFrom) {
			return fmt.Errorf("NOTIFICATION_EMAIL_FROM has invalid format: %s", notif.EmailFrom)
		}

		validAuthMethods := map[string]bool{"login": true, "plain": true, "cram-md5": true, "none": true}
		if !validAuthMethods[strings.ToLower(notif.SMTPAuth)] {
			return fmt.Errorf("SMTP_AUTH_METHOD must be one of: login, plain, cram-md5, none, got '%s'", notif.SMTPAuth)
		}
	}

	if notif.DiscordWebhookURL != "" {
		if !strings.HasPrefix(notif.DiscordWebhookURL, "http://") && !strings.HasPrefix(notif.DiscordWebhookURL, "https://") {
			return fmt.Errorf("DISCORD_WEBHOOK_URL must start with http:// or https://")
		}
	}

	if notif.TelegramBotToken != "" && notif.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// isValidEmail validate email format
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
