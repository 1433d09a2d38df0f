package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/mnehpets/jrpc/endpoint"
	"github.com/mnehpets/jrpc/logging"
	"github.com/sirupsen/logrus"
)

// LoggingProcessor writes one log entry per request once the endpoint and
// renderer have run. Place it after RequestIDProcessor so entries carry the
// request id.
type LoggingProcessor struct {
	Log logrus.FieldLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewLoggingProcessor(log logrus.FieldLogger) *LoggingProcessor {
	return &LoggingProcessor{Log: log, Now: time.Now}
}

// Process implements endpoint.Processor.
func (p *LoggingProcessor) Process(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	sw := &statusWriter{ResponseWriter: w}
	err := next(sw, r)

	status := sw.status
	if err != nil {
		status = http.StatusInternalServerError
		var ee *endpoint.EndpointError
		if errors.As(err, &ee) && ee.Status >= 100 {
			status = ee.Status
		}
	} else if status == 0 {
		status = http.StatusOK
	}

	if p.Log == nil {
		return err
	}
	entry := p.Log.WithFields(logrus.Fields{
		logging.FieldMethod:   r.Method,
		logging.FieldPath:     r.URL.Path,
		logging.FieldStatus:   status,
		logging.FieldDuration: now().Sub(start).String(),
	})
	if id := RequestID(r.Context()); id != "" {
		entry = entry.WithField(logging.FieldRequestID, id)
	}
	switch {
	case status >= 500:
		entry.WithError(err).Error("request failed")
	case err != nil:
		entry.WithError(err).Info("request rejected")
	default:
		entry.Info("request served")
	}
	return err
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

var _ endpoint.Processor = (*LoggingProcessor)(nil)
