// Package encoder wraps age passphrase encryption for the secrets file.
package encoder

import (
	"fmt"
	"io"
	"os"

	"filippo.io/age"
)

type Encryptor struct {
	recipient *age.ScryptRecipient
	identity  *age.ScryptIdentity
}

func NewEncryptor(password string) (*Encryptor, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipient: %w", err)
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return &Encryptor{
		recipient: recipient,
		identity:  identity,
	}, nil
}

// NewWriter returns a writer that encrypts while streaming. Close must be
// called to flush the last chunk.
func (e *Encryptor) NewWriter(output io.Writer) (io.WriteCloser, error) {
	return age.Encrypt(output, e.recipient)
}

func (e *Encryptor) DecryptReader(input io.Reader) (io.Reader, error) {
	return age.Decrypt(input, e.identity)
}

// EncryptFile writes an encrypted copy of inputPath to outputPath with
// owner-only permissions.
func (e *Encryptor) EncryptFile(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	w, err := e.NewWriter(out)
	if err != nil {
		return fmt.Errorf("failed to create age writer: %w", err)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("failed to write encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize encrypted data: %w", err)
	}

	return nil
}

func (e *Encryptor) DecryptFile(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open encrypted file: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	reader, err := age.Decrypt(in, e.identity)
	if err != nil {
		return fmt.Errorf("failed to decrypt (wrong password?): %w", err)
	}

	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("failed to write decrypted data: %w", err)
	}

	return nil
}
