package config

import (
	"time"

	"github.com/spf13/viper"
)

type Node struct {
	// Timeout of a single RPC request
	RequestTimeout time.Duration

	// Max time validator count query is retried
	BackoffMaxElapsedTime time.Duration

	// Max time between retries
	BackoffMaxInterval time.Duration
}

func setNodeDefaults() {
	viper.SetDefault("Node.RequestTimeout", "10s")
	viper.SetDefault("Node.BackoffMaxElapsedTime", "1m")
	viper.SetDefault("Node.BackoffMaxInterval", "10s")
}
