package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config, err := Load("")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "INFO", config.LogLevel)
	require.Equal(s.T(), 30*time.Second, config.StopTimeout)
	require.Equal(s.T(), "benchmarking_report.txt", config.Analyzer.ReportFileName)
	require.Equal(s.T(), "round_trip_times.txt", config.Analyzer.RoundTripFileName)
	require.Equal(s.T(), 27, config.Analyzer.TimestampWidth)
	require.True(s.T(), config.Analyzer.VerifyPayloads)
	require.False(s.T(), config.Database.Enabled)
	require.Equal(s.T(), time.Minute, config.Node.BackoffMaxElapsedTime)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv("IBCBENCH_LOG_LEVEL", "debug")
	s.T().Setenv("IBCBENCH_ANALYZER_MAX_WORKERS", "9")

	config, err := Load("")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "debug", config.LogLevel)
	require.Equal(s.T(), 9, config.Analyzer.MaxWorkers)
}

func (s *ConfigTestSuite) TestFile() {
	path := filepath.Join(s.T().TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"Analyzer": {"TimestampWidth": 19, "MetricsEnabled": false}, "Node": {"RequestTimeout": "3s"}}`), 0o600)
	require.Nil(s.T(), err)

	config, err := Load(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), 19, config.Analyzer.TimestampWidth)
	require.False(s.T(), config.Analyzer.MetricsEnabled)
	require.Equal(s.T(), 3*time.Second, config.Node.RequestTimeout)
	require.Equal(s.T(), "round_trip_times.txt", config.Analyzer.RoundTripFileName)
}

func (s *ConfigTestSuite) TestInvalid() {
	s.T().Setenv("IBCBENCH_ANALYZER_TIMESTAMP_WIDTH", "0")

	_, err := Load("")
	require.Error(s.T(), err)
}
