package main

import (
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/middleware"
)

var StartTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	RouterEventCapacity = 256
	Stream              = "synthetic"
	Seed                = 42
	Steps               = 10_000
	SampleInterval      = 50 * time.Millisecond
	MonitorFlags        = middleware.MonitorAnomalies
)
