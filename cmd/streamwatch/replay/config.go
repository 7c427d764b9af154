package main

import (
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/middleware"
)

var ReplayStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
var ReplayEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

const (
	RouterEventCapacity = 100
	ObservationSource   = "data/sensor_observations.bin"
	Stream              = "sensor"
	MonitorFlags        = middleware.MonitorAnomalies
)
