package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ProductionDropsDebug(t *testing.T) {
	logger, err := New("production")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestNew_DevelopmentKeepsDebug(t *testing.T) {
	logger, err := New("development")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}
