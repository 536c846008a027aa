package cmd

import (
	"os"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	log      logr.Logger
	cfgFile  string
	logLevel string

	configDefault = `# =============================================================================
# SAFESYNC - S3 folder backup scripts for the Windows Task Scheduler
# =============================================================================

server:
  addr: "127.0.0.1:8080"

timezone: "Local" #Ex: America/Sao_Paulo, UTC
log_level: "INFO"

scripts:
  dir: "" #default C:\safesync\scripts on Windows, ~/.safesync/scripts elsewhere
  retention:
    # retention_days: 30
    # max_scripts: 10

scheduler:
  binary: "schtasks"

execution:
  shell: ["cmd", "/c"]
  lock_file: "" #default <user cache>/safesync/run.lock
  timeout: 0 #minutes, 0 = no limit

aws:
  cli: "aws"
  env_file: ".env" #AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, BUCKET_NAME (.env.age when encrypted)

notification:
  success_enabled: false
  error_enabled: true
  emails: []
  email_from: ""
  smtp_server: ""
  smtp_port: 587
  smtp_user: ""
  smtp_password: "" #safesync obscure <password>
  smtp_auth: "login"
  smtp_tls: true
  discord_webhook_url: "" #https://discord.com/api/webhooks/...
  telegram_bot_token: ""
  telegram_chat_id: ""
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "safesync",
	Short: "Generate and schedule S3 folder backup scripts",
	Long: `safesync builds batch scripts that mirror local folders to an S3 bucket
with "aws s3 sync", stores them in one directory and registers them with the
Windows Task Scheduler.

	- One sync line per folder, into s3://<bucket>/<folder name>/
	- Optional Glacier Instant Retrieval storage class
	- Daily or weekly tasks named AutoS3Backup_<script>
	- Credentials read from a .env file (optionally age-encrypted)
	- Success/error notifications (Discord, Telegram, Mail)

Examples:

	# Create a default safesync.yaml
	safesync init

	# Generate a script for two folders
	safesync generate -f C:\Data\Photos -f D:\Work -b my-bucket

	# Run it every weekend at 02:30
	safesync schedule backup_20240517_143000 --at 02:30 --days SAT,SUN

	# Run it now
	safesync run backup_20240517_143000
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logging.New(logLevel)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./safesync.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
}
