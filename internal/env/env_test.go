package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadOverridesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# node settings\nCHECKCOINBASE_TEST_DATADIR=\"/srv/bitcoin\"\n\nCHECKCOINBASE_TEST_NET=testnet\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CHECKCOINBASE_TEST_NET", "mainnet")

	require.NoError(t, Load(path))
	assert.Equal(t, "/srv/bitcoin", os.Getenv("CHECKCOINBASE_TEST_DATADIR"))
	assert.Equal(t, "testnet", os.Getenv("CHECKCOINBASE_TEST_NET"))

	os.Unsetenv("CHECKCOINBASE_TEST_DATADIR")
}
