// Package config loads the tunables of the physics core from YAML.
package config

import (
	"io"
	"os"

	"github.com/akmonengine/ballast"
	"github.com/akmonengine/ballast/actor"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Settings is the root of the configuration file.
type Settings struct {
	Motion  MotionSettings  `yaml:"motion"`
	Workers int             `yaml:"workers"`
	Logging LoggingSettings `yaml:"logging"`
}

// MotionSettings are the velocity clamps given to new moving bodies.
type MotionSettings struct {
	MaxLinearVelocity  float64 `yaml:"max_linear_velocity"`  // m/s
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"` // rad/s
}

type LoggingSettings struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"` // console or json
	OutputPaths []string `yaml:"output_paths"`
}

// Default returns the settings used for every key missing from a file.
func Default() Settings {
	limits := actor.DefaultVelocityLimits()

	return Settings{
		Motion: MotionSettings{
			MaxLinearVelocity:  limits.MaxLinearVelocity,
			MaxAngularVelocity: limits.MaxAngularVelocity,
		},
		Workers: ballast.DEFAULT_WORKERS,
		Logging: LoggingSettings{
			Level:       "info",
			Encoding:    "console",
			OutputPaths: []string{"stderr"},
		},
	}
}

// Load decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Load(r io.Reader) (Settings, error) {
	settings := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, errors.Wrap(err, "decoding settings")
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func LoadFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "opening settings")
	}
	defer f.Close()

	settings, err := Load(f)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "loading %s", path)
	}
	return settings, nil
}

// Validate reports every invalid value at once.
func (s Settings) Validate() error {
	var err error

	if s.Motion.MaxLinearVelocity <= 0 {
		err = multierr.Append(err, errors.Errorf("motion.max_linear_velocity must be positive, got %v", s.Motion.MaxLinearVelocity))
	}
	if s.Motion.MaxAngularVelocity <= 0 {
		err = multierr.Append(err, errors.Errorf("motion.max_angular_velocity must be positive, got %v", s.Motion.MaxAngularVelocity))
	}
	if s.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("workers must not be negative, got %d", s.Workers))
	}
	if _, levelErr := zapcore.ParseLevel(s.Logging.Level); levelErr != nil {
		err = multierr.Append(err, errors.Wrap(levelErr, "logging.level"))
	}
	if s.Logging.Encoding != "console" && s.Logging.Encoding != "json" {
		err = multierr.Append(err, errors.Errorf("logging.encoding must be console or json, got %q", s.Logging.Encoding))
	}

	return err
}

// Limits returns the velocity clamps for body creation.
func (s Settings) Limits() actor.VelocityLimits {
	return actor.VelocityLimits{
		MaxLinearVelocity:  s.Motion.MaxLinearVelocity,
		MaxAngularVelocity: s.Motion.MaxAngularVelocity,
	}
}

// PairFilter returns a broad phase pair filter using the configured workers.
func (s Settings) PairFilter(logger *zap.Logger) ballast.PairFilter {
	return ballast.PairFilter{Workers: s.Workers, Logger: logger}
}

// Logger builds a zap logger from the logging settings.
func (s Settings) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(s.Logging.Level)
	if err != nil {
		return nil, errors.Wrap(err, "logging.level")
	}

	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: s.Logging.Encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       s.Logging.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger.Named("ballast"), nil
}
