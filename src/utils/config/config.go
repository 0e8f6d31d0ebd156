package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "IBCBENCH_"

// Config stores global configuration
type Config struct {
	// Maximum time the analysis will be closing before stop is forced.
	StopTimeout time.Duration

	// Logging level
	LogLevel string

	Analyzer Analyzer
	Node     Node
	Database Database
}

func setDefaults() {
	viper.SetDefault("LogLevel", "INFO")
	viper.SetDefault("StopTimeout", "30s")

	setAnalyzerDefaults()
	setNodeDefaults()
	setDatabaseDefaults()
}

func Default() (config *Config) {
	config, _ = Load("")
	return
}

// Visits every field and registers upper snake case ENV name for it
func BindEnv(path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		key := strings.Join(path, ".")
		env := ENV_PREFIX + strcase.ToScreamingSnake(strings.Join(path, "_"))
		err := viper.BindEnv(key, env)
		if err != nil {
			panic(err)
		}
		return
	}

	// Time is a struct, but it's a leaf for configuration purposes
	if val.Type() == reflect.TypeOf(time.Time{}) {
		return
	}

	for i := 0; i < val.NumField(); i++ {
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, val.Type().Field(i).Name)
		BindEnv(newPath, val.Field(i))
	}
}

func defaultDecoderConfig(output interface{}) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}
}

// Load configuration from file and env
func Load(filename string) (config *Config, err error) {
	viper.Reset()
	viper.SetConfigType("json")

	setDefaults()

	BindEnv([]string{}, reflect.ValueOf(Config{}))

	// Empty filename means we use default values
	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = viper.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = viper.Unmarshal(config, func(c *mapstructure.DecoderConfig) {
		*c = *defaultDecoderConfig(config)
	})
	if err != nil {
		return nil, err
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return
}

func (self *Config) Validate() error {
	if self.Analyzer.TimestampWidth <= 0 {
		return fmt.Errorf("analyzer timestamp width must be positive, got %d", self.Analyzer.TimestampWidth)
	}
	if self.Analyzer.MaxWorkers <= 0 {
		return fmt.Errorf("analyzer max workers must be positive, got %d", self.Analyzer.MaxWorkers)
	}
	return nil
}
