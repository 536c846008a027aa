package cmd

import (
	"fmt"

	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/spf13/cobra"
)

// obscureCmd represents the obscure command
var obscureCmd = &cobra.Command{
	Use:   "obscure [plaintext]",
	Short: "Obscure a secret for the secrets or config file",
	Long: `Obscure a secret (AWS secret key, SMTP password) so it is not stored
in plain text. The output starts with "XXX:" and is revealed automatically
when the secrets file or SMTP password is loaded.

Obscuring protects against accidental exposure only. Use
"safesync secrets encrypt" for real encryption.

Examples:
  safesync obscure "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"

  # Use the output in .env
  AWS_SECRET_ACCESS_KEY=XXX:4Yp8m2qK8nJ5vL9wX...`,
	Args: cobra.ExactArgs(1),
	Run:  runObscure,
}

func init() {
	rootCmd.AddCommand(obscureCmd)
}

func runObscure(cmd *cobra.Command, args []string) {
	obscured, err := config.Obscure(args[0])
	if err != nil {
		log.Fatalf("Obscure failed: %v", err)
	}

	fmt.Printf("🔒 Obscured:  %s\n\n", obscured)
	fmt.Println("📋 Add to .env:")
	fmt.Printf("  AWS_SECRET_ACCESS_KEY=%s\n", obscured)
}
