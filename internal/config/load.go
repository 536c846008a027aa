package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromYAML reads path over the defaults and applies environment
// overrides on top.
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	loadEnvOverrides(cfg)

	return finish(cfg)
}

func LoadFromEnv() (*Config, error) {
	cfg := Default()
	loadEnvOverrides(cfg)

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	password, err := reveal(cfg.Notification.SMTPPassword)
	if err != nil {
		return nil, fmt.Errorf("reveal smtp_password: %w", err)
	}
	cfg.Notification.SMTPPassword = password

	return cfg, cfg.Validate()
}

func loadEnvOverrides(cfg *Config) {
	if timezone, ok := stringLookup("TZ"); ok {
		cfg.Timezone = timezone
	}
	if logLevel, ok := stringLookup("SAFESYNC_LOG_LEVEL"); ok {
		cfg.LogLevel = logLevel
	}
	if serverAddr, ok := stringLookup("SAFESYNC_SERVER_ADDR"); ok {
		cfg.Server.Addr = serverAddr
	}

	if scriptsDir, ok := stringLookup("SAFESYNC_SCRIPTS_DIR"); ok {
		cfg.Scripts.Dir = scriptsDir
	}
	if retentionDays, ok := intLookup("RETENTION_DAYS"); ok {
		cfg.Scripts.Retention.RetentionDays = &retentionDays
	}
	if scriptLimit, ok := intLookup("SCRIPT_LIMIT"); ok {
		cfg.Scripts.Retention.MaxScripts = &scriptLimit
	}

	if schtasks, ok := stringLookup("SAFESYNC_SCHTASKS"); ok {
		cfg.Scheduler.Binary = schtasks
	}
	if shell, ok := stringsLookup("SAFESYNC_SHELL"); ok {
		cfg.Execution.Shell = shell
	}
	if lockFile, ok := stringLookup("SAFESYNC_LOCK_FILE"); ok {
		cfg.Execution.LockFile = lockFile
	}
	if timeout, ok := intLookup("SAFESYNC_RUN_TIMEOUT"); ok {
		cfg.Execution.Timeout = timeout
	}

	if awsCLI, ok := stringLookup("SAFESYNC_AWS_CLI"); ok {
		cfg.AWS.CLI = awsCLI
	}
	if envFile, ok := stringLookup("SAFESYNC_ENV_FILE"); ok {
		cfg.AWS.EnvFile = envFile
	}

	if notificationSuccessEnabled, ok := boolLookup("NOTIFICATION_SUCCESS_ENABLED"); ok {
		cfg.Notification.SuccessEnabled = notificationSuccessEnabled
	}
	if notificationErrorEnabled, ok := boolLookup("NOTIFICATION_ERROR_ENABLED"); ok {
		cfg.Notification.ErrorEnabled = notificationErrorEnabled
	}
	if notificationEmails, ok := stringsLookup("NOTIFICATION_EMAIL"); ok {
		cfg.Notification.Emails = notificationEmails
	}
	if notificationEmailFrom, ok := stringLookup("NOTIFICATION_EMAIL_FROM"); ok {
		cfg.Notification.EmailFrom = notificationEmailFrom
	}
	if smtpServer, ok := stringLookup("SMTP_SERVER"); ok {
		cfg.Notification.SMTPServer = smtpServer
	}
	if smtpPort, ok := intLookup("SMTP_PORT"); ok {
		cfg.Notification.SMTPPort = smtpPort
	}
	if smtpUser, ok := stringLookup("SMTP_USER"); ok {
		cfg.Notification.SMTPUser = smtpUser
	}
	if smtpPassword, ok := stringLookup("SMTP_PASSWORD"); ok {
		cfg.Notification.SMTPPassword = smtpPassword
	}
	if smtpAuthMethod, ok := stringLookup("SMTP_AUTH_METHOD"); ok {
		cfg.Notification.SMTPAuth = smtpAuthMethod
	}
	if smtpTls, ok := boolLookup("SMTP_TLS"); ok {
		cfg.Notification.SMTPTLS = smtpTls
	}
	if discordWebhookUrl, ok := stringLookup("DISCORD_WEBHOOK_URL"); ok {
		cfg.Notification.DiscordWebhookURL = discordWebhookUrl
	}
	if telegramBotToken, ok := stringLookup("TELEGRAM_BOT_TOKEN"); ok {
		cfg.Notification.TelegramBotToken = telegramBotToken
	}
	if telegramChatId, ok := stringLookup("TELEGRAM_CHAT_ID"); ok {
		cfg.Notification.TelegramChatID = telegramChatId
	}
}
