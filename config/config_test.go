package config_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/dualmatch/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(`{}`))
	require.NoError(t, err)
	require.Equal(t, config.DefaultThreadPoolSize, cfg.ThreadPoolSize)
	require.Empty(t, cfg.Partitions)
	require.Empty(t, cfg.Fusions)
	require.True(t, cfg.EdgesInFusionUnitOrDefault())
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(`{
		"thread_pool_size": 0,
		"partitions": [[0, 72], [84, 132]],
		"fusions": [[0, 1]],
		"edges_in_fusion_unit": false
	}`))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.ThreadPoolSize)
	require.Equal(t, []config.Range{{0, 72}, {84, 132}}, cfg.Partitions)
	require.Equal(t, []config.Fusion{{0, 1}}, cfg.Fusions)
	require.False(t, cfg.EdgesInFusionUnitOrDefault())
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := config.Load(strings.NewReader(`{"thread_pool_sizee": 4}`))
	require.ErrorIs(t, err, config.ErrUnknownField)
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	_, err := config.Load(strings.NewReader(`{not json`))
	require.Error(t, err)
}
