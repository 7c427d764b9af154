package bus

type EventId uint8

const (
	ObservationEvent EventId = iota
	VerdictEvent
	AnomalyEvent
)

func (id EventId) String() string {
	switch id {
	case ObservationEvent:
		return "observation"
	case VerdictEvent:
		return "verdict"
	case AnomalyEvent:
		return "anomaly"
	default:
		return "unknown"
	}
}
