package encoder

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncryptorRequiresPassword(t *testing.T) {
	_, err := NewEncryptor("")
	assert.Error(t, err)
}

func TestStreamRoundTrip(t *testing.T) {
	enc, err := NewEncryptor("correct horse")
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := enc.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte("BUCKET_NAME=my-bkt\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.NotContains(t, buf.String(), "my-bkt")

	r, err := enc.DecryptReader(&buf)
	require.NoError(t, err)
	plain, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "BUCKET_NAME=my-bkt\n", string(plain))
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")
	sealed := filepath.Join(dir, ".env.age")
	opened := filepath.Join(dir, ".env.out")
	require.NoError(t, os.WriteFile(src, []byte("AWS_ACCESS_KEY_ID=AKIA\n"), 0o600))

	enc, err := NewEncryptor("pw")
	require.NoError(t, err)
	require.NoError(t, enc.EncryptFile(src, sealed))
	require.NoError(t, enc.DecryptFile(sealed, opened))

	got, err := os.ReadFile(opened)
	require.NoError(t, err)
	assert.Equal(t, "AWS_ACCESS_KEY_ID=AKIA\n", string(got))

	wrong, err := NewEncryptor("other")
	require.NoError(t, err)
	assert.Error(t, wrong.DecryptFile(sealed, opened))
}
