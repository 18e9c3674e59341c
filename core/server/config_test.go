package server_test

import (
	"testing"

	"vend-sync/core/config"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "Vend", cfg.Server.Channel)
}
