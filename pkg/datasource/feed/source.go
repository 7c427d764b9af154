package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility"
)

const (
	feedComponentName = "datasource.feed"
)

var ErrClosed = errors.New("feed closed")

// wireSample is the frame format of the upstream producer: one JSON object
// per websocket message.
type wireSample struct {
	Value     float64   `json:"value"`
	TimeStamp time.Time `json:"ts"`
}

// Source ingests a live stream of observations over a websocket connection.
// Frames are decoded on a reader goroutine and buffered; if the consumer
// falls behind, the oldest buffered frames are kept and new ones dropped.
type Source struct {
	endpoint string
	stream   string
	logger   *zap.Logger

	conn  *websocket.Conn
	queue chan common.Observation

	ctx       context.Context
	ctxCancel context.CancelFunc
}

func NewSource(logger *zap.Logger, endpoint, stream string, queueCapacity int) *Source {
	return &Source{
		endpoint: endpoint,
		stream:   stream,
		logger:   logger,
		queue:    make(chan common.Observation, queueCapacity),
	}
}

func (s *Source) Connect(ctx context.Context) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return errors.Join(errors.New("unable to dial feed endpoint"), err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	s.conn = conn
	s.ctx, s.ctxCancel = context.WithCancel(ctx)
	go s.read()
	return nil
}

func (s *Source) Close() {
	if s.ctxCancel != nil {
		s.ctxCancel()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// GetNext blocks until a buffered observation is available or the feed is
// closed.
func (s *Source) GetNext() (common.Observation, error) {
	if s.ctx == nil {
		// Never connected
		return common.Observation{}, ErrClosed
	}
	select {
	case observation := <-s.queue:
		return observation, nil
	case <-s.ctx.Done():
		// Drain what the reader buffered before it stopped
		select {
		case observation := <-s.queue:
			return observation, nil
		default:
			return common.Observation{}, ErrClosed
		}
	}
}

func (s *Source) read() {
	defer s.ctxCancel()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				if s.ctx.Err() == nil {
					s.logger.Warn("cannot read feed", zap.Error(err))
				}
				return
			}

			var sample wireSample
			if err := json.Unmarshal(message, &sample); err != nil {
				s.logger.Warn("unable to decode frame",
					zap.ByteString("raw", message),
					zap.Error(err))
				continue
			}

			observation := common.Observation{
				Value:       sample.Value,
				Source:      feedComponentName,
				Stream:      s.stream,
				ExecutionId: utility.GetExecutionID(),
				TraceID:     utility.CreateTraceID(),
				TimeStamp:   sample.TimeStamp,
			}
			if observation.TimeStamp.IsZero() {
				observation.TimeStamp = time.Now()
			}

			select {
			case s.queue <- observation:
			default:
				s.logger.Warn("feed queue full, dropping frame",
					zap.Uint64("tid", observation.TraceID))
			}
		}
	}
}
