package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "safesync "+info.Version)
}

func TestGetPrefersLdflags(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	assert.Equal(t, "v1.2.3", Get().Version)
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortRevision("0123456789abcdef0123"))
	assert.Equal(t, "abc", shortRevision("abc"))
}
