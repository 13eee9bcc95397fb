package progress

import (
	"log/slog"
	"sync"

	"videodub/internal/logging"
)

// LogObserver mirrors progress into structured logs, sampling percentage
// buckets so long operations do not flood the log stream.
type LogObserver struct {
	mu         sync.Mutex
	logger     *slog.Logger
	stage      string
	total      float64
	bucketSize float64
	lastBucket int
}

// NewLogObserver constructs a sampling observer for the given stage. A
// non-positive bucketSize defaults to 10 percent.
func NewLogObserver(logger *slog.Logger, stage string, total, bucketSize float64) *LogObserver {
	if logger == nil {
		logger = logging.NewNop()
	}
	if total <= 0 {
		total = 100
	}
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &LogObserver{
		logger:     logging.NewComponentLogger(logger, "progress"),
		stage:      stage,
		total:      total,
		bucketSize: bucketSize,
		lastBucket: -1,
	}
}

// OnProgress implements Observer.
func (o *LogObserver) OnProgress(value float64, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	percent := value / o.total * 100
	bucket := int(percent / o.bucketSize)
	if bucket <= o.lastBucket {
		return
	}
	o.lastBucket = bucket
	attrs := []logging.Attr{
		logging.String(logging.FieldStage, o.stage),
		logging.Float64("percent", percent),
	}
	if message != "" {
		attrs = append(attrs, logging.String("detail", message))
	}
	o.logger.Debug("progress", logging.Args(attrs...)...)
}

// OnComplete implements Observer.
func (o *LogObserver) OnComplete() {
	o.logger.Debug("stage complete", logging.String(logging.FieldStage, o.stage))
}
