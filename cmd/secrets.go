package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/encoder"
	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	secretsInput  string
	secretsOutput string
	decryptInput  string
	decryptOutput string
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Protect the secrets file",
}

var secretsEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a .env file with a passphrase (age)",
	Long: `Encrypt the secrets file so it can be kept on disk without exposing
the AWS keys. Point aws.env_file at the .age file and export
SAFESYNC_PASSPHRASE to let safesync decrypt it.

Examples:
  safesync secrets encrypt
  safesync secrets encrypt -i prod.env -o prod.env.age`,
	Args: cobra.NoArgs,
	Run:  runSecretsEncrypt,
}

var secretsDecryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an age-encrypted secrets file for editing",
	Long: `Write the plain text of an encrypted secrets file. Encrypt it again
and remove the plain copy once you are done.

Examples:
  safesync secrets decrypt -i .env.age -o .env`,
	Args: cobra.NoArgs,
	Run:  runSecretsDecrypt,
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsEncryptCmd, secretsDecryptCmd)

	secretsDecryptCmd.Flags().StringVarP(&decryptInput, "input", "i", ".env.age", "encrypted secrets file")
	secretsDecryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "plain output (default <input> without .age)")
	secretsDecryptCmd.Flags().Bool("force", false, "overwrite the output without asking")

	secretsEncryptCmd.Flags().StringVarP(&secretsInput, "input", "i", ".env", "plain secrets file")
	secretsEncryptCmd.Flags().StringVarP(&secretsOutput, "output", "o", "", "encrypted output (default <input>.age)")
	secretsEncryptCmd.Flags().Bool("force", false, "overwrite the output without asking")
}

func runSecretsEncrypt(cmd *cobra.Command, args []string) {
	if !utils.FileExists(secretsInput) {
		log.Fatalf("Secrets file not found: %s", secretsInput)
	}

	output := secretsOutput
	if output == "" {
		output = secretsInput + ".age"
	}

	if utils.FileExists(output) && !confirm(cmd, fmt.Sprintf("Overwrite %s?", output)) {
		fmt.Println("❌ Cancelled")
		return
	}

	enc, err := encoder.NewEncryptor(askPassphrase(true))
	if err != nil {
		log.Fatalf("Failed to create encryptor: %v", err)
	}

	if err := enc.EncryptFile(secretsInput, output); err != nil {
		log.Fatalf("Encryption failed: %v", err)
	}

	color.Green("✅ Encrypted %s -> %s", secretsInput, output)
	fmt.Println("\n📝 Next steps:")
	fmt.Printf("   1. Set aws.env_file: %q in safesync.yaml\n", output)
	fmt.Printf("   2. Export %s before running safesync\n", config.PassphraseEnv)
	fmt.Printf("   3. Remove the plain file: %s\n", secretsInput)
}

func runSecretsDecrypt(cmd *cobra.Command, args []string) {
	if !utils.FileExists(decryptInput) {
		log.Fatalf("Encrypted file not found: %s", decryptInput)
	}

	output := decryptOutput
	if output == "" {
		output = strings.TrimSuffix(decryptInput, ".age")
	}
	if output == decryptInput {
		log.Fatalf("Output path must differ from the input, use -o")
	}

	if utils.FileExists(output) && !confirm(cmd, fmt.Sprintf("Overwrite %s?", output)) {
		fmt.Println("❌ Cancelled")
		return
	}

	enc, err := encoder.NewEncryptor(askPassphrase(false))
	if err != nil {
		log.Fatalf("Failed to create decryptor: %v", err)
	}

	if err := enc.DecryptFile(decryptInput, output); err != nil {
		log.Fatalf("Decryption failed: %v", err)
	}

	color.Green("✅ Decrypted %s -> %s", decryptInput, output)
	color.Yellow("⚠️  %s holds plain credentials, remove it when done", output)
}

// askPassphrase uses SAFESYNC_PASSPHRASE when set and prompts otherwise.
func askPassphrase(repeat bool) string {
	passphrase := os.Getenv(config.PassphraseEnv)
	if passphrase != "" {
		return passphrase
	}

	if err := survey.AskOne(&survey.Password{Message: "Passphrase:"}, &passphrase, survey.WithValidator(survey.Required)); err != nil {
		log.Fatalf("Passphrase prompt failed: %v", err)
	}

	if repeat {
		var again string
		if err := survey.AskOne(&survey.Password{Message: "Repeat passphrase:"}, &again); err != nil {
			log.Fatalf("Passphrase prompt failed: %v", err)
		}
		if again != passphrase {
			log.Fatalf("Passphrases do not match")
		}
	}

	return passphrase
}
