package cmd

import (
	"fmt"

	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Inspect the AWS credentials in the secrets file",
}

var credentialsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the credentials with aws sts get-caller-identity",
	Args:  cobra.NoArgs,
	Run:   runCredentialsCheck,
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded credentials (masked)",
	Args:  cobra.NoArgs,
	Run:   runCredentialsShow,
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
	credentialsCmd.AddCommand(credentialsCheckCmd, credentialsShowCmd)
}

func runCredentialsCheck(cmd *cobra.Command, args []string) {
	svc, _, secrets := buildService()

	ctx, cancel := commandContext()
	defer cancel()

	res, err := svc.CheckCredentials(ctx)
	if err != nil {
		log.Fatalf("Credential check failed: %v", err)
	}

	if !res.Valid {
		color.Red("❌ Credentials rejected")
		if res.Stderr != "" {
			fmt.Println(res.Stderr)
		}
		log.Fatalf("Invalid credentials for %s", secrets.Path())
	}

	color.Green("✅ Credentials valid")
	if res.Identity != "" {
		fmt.Println(res.Identity)
	}
}

func runCredentialsShow(cmd *cobra.Command, args []string) {
	svc, cfg, secrets := buildService()
	creds := svc.Credentials()

	fmt.Printf("Secrets file:          %s\n", secrets.Path())
	if creds.IsEmpty() {
		color.Yellow("No credentials found (set them in %s)", cfg.AWS.EnvFile)
		return
	}

	fmt.Printf("AWS_ACCESS_KEY_ID:     %s\n", creds.AccessKeyID)
	fmt.Printf("AWS_SECRET_ACCESS_KEY: %s\n", utils.MaskSecret(creds.SecretAccessKey))
	fmt.Printf("BUCKET_NAME:           %s\n", creds.BucketName)
}
