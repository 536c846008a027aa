package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/BrunoTulio/safesync/internal/encoder"
	"github.com/joho/godotenv"
)

const (
	KeyAccessKeyID     = "AWS_ACCESS_KEY_ID"
	KeySecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	KeyBucketName      = "BUCKET_NAME"

	// PassphraseEnv holds the passphrase for an encrypted secrets file.
	PassphraseEnv = "SAFESYNC_PASSPHRASE"

	encryptedSuffix = ".age"
)

type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

// Env returns the AWS variables to hand to a child process. Empty
// values are left out so the CLI can fall back to its own profile.
func (c Credentials) Env() []string {
	var env []string
	if c.AccessKeyID != "" {
		env = append(env, KeyAccessKeyID+"="+c.AccessKeyID)
	}
	if c.SecretAccessKey != "" {
		env = append(env, KeySecretAccessKey+"="+c.SecretAccessKey)
	}
	return env
}

func (c Credentials) IsEmpty() bool {
	return c.AccessKeyID == "" && c.SecretAccessKey == "" && c.BucketName == ""
}

// Secrets holds the credentials read from a dotenv file. The process
// environment is never modified; callers read Credentials explicitly.
type Secrets struct {
	mu         sync.RWMutex
	path       string
	passphrase string
	creds      Credentials
}

func NewSecrets(path, passphrase string) *Secrets {
	return &Secrets{
		path:       path,
		passphrase: passphrase,
	}
}

func (s *Secrets) Path() string {
	return s.path
}

func (s *Secrets) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Reload re-reads the file. On error the previous credentials are kept.
func (s *Secrets) Reload() (Credentials, error) {
	creds, err := ReadCredentials(s.path, s.passphrase)
	if err != nil {
		return s.Credentials(), err
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	return creds, nil
}

// ReadCredentials parses a dotenv secrets file. A missing file yields
// empty credentials and no error. Files ending in .age are decrypted
// with passphrase first.
func ReadCredentials(path, passphrase string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("open secrets %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var r io.Reader = f
	if strings.HasSuffix(path, encryptedSuffix) {
		if passphrase == "" {
			return Credentials{}, fmt.Errorf("secrets %s is encrypted, set %s", path, PassphraseEnv)
		}

		enc, err := encoder.NewEncryptor(passphrase)
		if err != nil {
			return Credentials{}, fmt.Errorf("create decryptor: %w", err)
		}

		if r, err = enc.DecryptReader(f); err != nil {
			return Credentials{}, fmt.Errorf("decrypt secrets (wrong passphrase?): %w", err)
		}
	}

	values, err := godotenv.Parse(r)
	if err != nil {
		return Credentials{}, fmt.Errorf("parse secrets %s: %w", path, err)
	}

	var creds Credentials
	fields := []struct {
		key string
		dst *string
	}{
		{KeyAccessKeyID, &creds.AccessKeyID},
		{KeySecretAccessKey, &creds.SecretAccessKey},
		{KeyBucketName, &creds.BucketName},
	}

	for _, field := range fields {
		value, err := reveal(strings.TrimSpace(values[field.key]))
		if err != nil {
			return Credentials{}, fmt.Errorf("reveal %s: %w", field.key, err)
		}
		*field.dst = value
	}

	return creds, nil
}
