package dice

import "go.uber.org/zap"

// loggedSource decorates a Source and logs every draw at debug level, so a
// full roll-by-roll audit trail is available when debugging a battle.
type loggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource wraps src so that each Intn draw is logged to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) Source {
	return &loggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
//
// Postcondition: the returned value is exactly the wrapped source's draw.
func (l *loggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("rolled",
		zap.Int("value", v+1),
		zap.Int("sides", n),
	)
	return v
}
