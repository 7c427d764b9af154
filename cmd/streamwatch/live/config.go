package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/detector"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/middleware"
)

const (
	RouterEventCapacity = 256
	MonitorFlags        = middleware.MonitorAnomalies
)

type Config struct {
	Endpoint         string  `yaml:"endpoint"`
	Stream           string  `yaml:"stream"`
	QueueCapacity    int     `yaml:"queue_capacity"`
	Alpha            float64 `yaml:"alpha"`
	Threshold        float64 `yaml:"threshold"`
	WindowSize       int     `yaml:"window_size"`
	PreUpdateScoring bool    `yaml:"pre_update_scoring"`
}

func LoadConfig(path string) (Config, error) {
	config := Config{
		Stream:        "live",
		QueueCapacity: 256,
		Alpha:         detector.DefaultAlpha,
		Threshold:     detector.DefaultThreshold,
		WindowSize:    detector.DefaultWindowSize,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("unable to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("unable to parse config %q: %w", path, err)
	}
	if config.Endpoint == "" {
		return config, errors.New("endpoint is required")
	}
	return config, nil
}

func (c Config) DetectorOptions() []detector.Option {
	options := []detector.Option{
		detector.WithAlpha(c.Alpha),
		detector.WithThreshold(c.Threshold),
		detector.WithWindowSize(c.WindowSize),
	}
	if c.PreUpdateScoring {
		options = append(options, detector.WithPreUpdateScoring())
	}
	return options
}
