package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

type Config struct {
	Server       Server             `yaml:"server"`
	Timezone     string             `yaml:"timezone"`
	LogLevel     string             `yaml:"log_level"`
	Scripts      ScriptsConfig      `yaml:"scripts"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Execution    ExecutionConfig    `yaml:"execution"`
	AWS          AWSConfig          `yaml:"aws"`
	Notification NotificationConfig `yaml:"notification"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type RetentionConfig struct {
	RetentionDays *int `yaml:"retention_days"` // optional
	MaxScripts    *int `yaml:"max_scripts"`    // optional
}

type ScriptsConfig struct {
	Dir       string          `yaml:"dir"`
	Retention RetentionConfig `yaml:"retention"`
}

type SchedulerConfig struct {
	Binary string `yaml:"binary"`
}

type ExecutionConfig struct {
	Shell    []string `yaml:"shell"`
	LockFile string   `yaml:"lock_file"`
	Timeout  int      `yaml:"timeout"` // minutes, 0 = no limit
}

type AWSConfig struct {
	CLI     string `yaml:"cli"`
	EnvFile string `yaml:"env_file"`
}

type NotificationConfig struct {
	SuccessEnabled bool `yaml:"success_enabled"`
	ErrorEnabled   bool `yaml:"error_enabled"`

	Emails       []string `yaml:"emails"`
	EmailFrom    string   `yaml:"email_from"`
	SMTPServer   string   `yaml:"smtp_server"`
	SMTPPort     int      `yaml:"smtp_port"`
	SMTPUser     string   `yaml:"smtp_user"`
	SMTPPassword string   `yaml:"smtp_password"`
	SMTPAuth     string   `yaml:"smtp_auth"`
	SMTPTLS      bool     `yaml:"smtp_tls"`

	DiscordWebhookURL string `yaml:"discord_webhook_url"`

	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   string `yaml:"telegram_chat_id"`
}

// DefaultScriptsDir is C:\safesync\scripts on Windows and
// ~/.safesync/scripts elsewhere.
func DefaultScriptsDir() string {
	if runtime.GOOS == "windows" {
		return `C:\safesync\scripts`
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".safesync", "scripts")
}

func Default() *Config {
	return &Config{
		Server:   Server{Addr: "127.0.0.1:8080"},
		Timezone: "Local",
		LogLevel: "INFO",
		Scripts: ScriptsConfig{
			Dir: DefaultScriptsDir(),
		},
		Scheduler: SchedulerConfig{Binary: "schtasks"},
		Execution: ExecutionConfig{Shell: []string{"cmd", "/c"}},
		AWS: AWSConfig{
			CLI:     "aws",
			EnvFile: ".env",
		},
		Notification: NotificationConfig{
			SMTPPort: 587,
			SMTPAuth: "login",
			SMTPTLS:  true,
		},
	}
}

func (c *Config) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) MustLocation() *time.Location {
	loc, err := c.GetLocation()

	if err != nil {
		panic(err)
	}
	return loc
}

func (c *Config) IsNotifyMail() bool {
	return c.Notification.IsMails()
}

func (c *Config) IsNotifyDiscord() bool {
	return c.Notification.DiscordWebhookURL != ""
}

func (c *Config) IsNotifyTelegram() bool {
	return c.Notification.TelegramBotToken != ""
}

func (c *NotificationConfig) IsMails() bool {
	return len(c.Emails) > 0
}

func (r *RetentionConfig) HasRetentionDays() bool {
	return r.RetentionDays != nil
}

func (r *RetentionConfig) HasMaxScripts() bool {
	return r.MaxScripts != nil
}
