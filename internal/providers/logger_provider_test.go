package providers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"venued/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByComponent(t *testing.T) {
	assert.Equal(t, TypeSync, GetLogTypeByComponent("venue"))
	assert.Equal(t, TypeSync, GetLogTypeByComponent("sync"))
	assert.Equal(t, TypeCheckIn, GetLogTypeByComponent("checkin"))
	assert.Equal(t, TypeHttp, GetLogTypeByComponent("http"))
	assert.Equal(t, TypeScheduler, GetLogTypeByComponent("analytics"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "sync", TypeSync.String())
	assert.Equal(t, "app", TypeEnum(99).String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeSync, "sync finished with tag %s", "T1")
	logger.Debugf(TypeCheckIn, "below level")
	logger.Close()

	for _, name := range []string{"app", "http", "sync", "checkin", "scheduler"} {
		_, err := os.Stat(filepath.Join(dir, name+".log"))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sync.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "sync finished with tag T1"))

	data, err = os.ReadFile(filepath.Join(dir, "checkin.log"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "verbose", Dir: t.TempDir()},
	}
	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
