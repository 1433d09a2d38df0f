package lint

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/mnehpets/jrpc/codec"
	"github.com/mnehpets/jrpc/config"
	"github.com/mnehpets/jrpc/endpoint"
	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/mnehpets/jrpc/logging"
	"github.com/mnehpets/jrpc/middleware"
	"github.com/mnehpets/jrpc/schema"
	"github.com/sirupsen/logrus"
)

// Service serves packet checks over HTTP.
//
// Routes:
//
//	POST /verify/{kind}   check the body (JSON or CBOR by Content-Type)
//	GET  /errors/{key}    standard error packet by code or message, ?id= binds it
//	GET  /codes           the standard error code table
//
// Responses are JSON unless the client prefers application/cbor.
type Service struct {
	// Schemas may be nil.
	Schemas *schema.Registry
	// Log defaults to a discarding logger.
	Log logrus.FieldLogger
	// MaxBodyBytes bounds /verify bodies. Zero means no limit.
	MaxBodyBytes int64
}

// NewMux returns a mux serving s behind the request id, logging and
// security header processors configured from cfg.
func NewMux(s *Service, cfg config.Server) *http.ServeMux {
	mux := http.NewServeMux()
	s.Routes(mux,
		middleware.NewRequestIDProcessor(),
		middleware.NewLoggingProcessor(s.logger()),
		middleware.NewSecurityHeadersProcessor(middleware.WithAllowedOrigins(cfg.AllowedOrigins...)),
	)
	return mux
}

// Routes registers the service on mux. processors run before every route.
func (s *Service) Routes(mux *http.ServeMux, processors ...endpoint.Processor) {
	mux.Handle("POST /verify/{kind}", endpoint.Handler(s.verify, slices.Concat(processors, []endpoint.Processor{endpoint.ProcessorFunc(s.limitBody)})...))
	mux.Handle("GET /errors/{key}", endpoint.Handler(s.errorPacket, processors...))
	mux.Handle("GET /codes", endpoint.Handler(s.codes, processors...))
	mux.Handle("OPTIONS /", endpoint.Handler(s.options, processors...))
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}

func (s *Service) limitBody(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
	if s.MaxBodyBytes > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	}
	return next(w, r)
}

type verifyParams struct {
	Kind        string `path:"kind"`
	ContentType string `header:"Content-Type"`
	Body        []byte `body:""`
}

func (s *Service) verify(_ http.ResponseWriter, r *http.Request, p verifyParams) (endpoint.Renderer, error) {
	if len(p.Body) == 0 {
		return nil, endpoint.Error(http.StatusBadRequest, "empty body", nil)
	}
	packet, err := codec.Decode(p.ContentType, p.Body)
	if errors.Is(err, codec.ErrUnsupportedMediaType) {
		return nil, endpoint.Error(http.StatusUnsupportedMediaType, err.Error(), err)
	}
	if err != nil {
		return nil, endpoint.Error(http.StatusBadRequest, err.Error(), err)
	}

	report, err := Check(packet, p.Kind, s.Schemas)
	if err != nil {
		return nil, endpoint.Error(http.StatusNotFound, err.Error(), err)
	}
	s.logger().WithFields(logrus.Fields{
		logging.FieldRequestID: middleware.RequestID(r.Context()),
		logging.FieldKind:      report.Kind,
		"valid":                report.Valid,
		"problems":             len(report.Problems),
	}).Debug("packet checked")
	return endpoint.Negotiate(r, http.StatusOK, report), nil
}

type errorParams struct {
	Key string `path:"key"`
	ID  string `query:"id"`
}

// errorPacket treats a key that parses as an integer as a code and anything
// else as a canonical message.
func (s *Service) errorPacket(_ http.ResponseWriter, r *http.Request, p errorParams) (endpoint.Renderer, error) {
	var key any = p.Key
	if code, err := strconv.Atoi(p.Key); err == nil {
		key = code
	}
	packet, err := jsonrpc.GenerateErrorPacket(key)
	if err != nil {
		return nil, endpoint.Error(http.StatusNotFound, "unknown error code or message", err)
	}

	if p.ID != "" {
		id, err := strconv.ParseInt(p.ID, 10, 64)
		if err != nil {
			return nil, endpoint.Error(http.StatusBadRequest, "id must be an integer", err)
		}
		if packet, err = jsonrpc.WithID(packet, id); err != nil {
			return nil, endpoint.Error(http.StatusBadRequest, err.Error(), err)
		}
	}
	return endpoint.Negotiate(r, http.StatusOK, packet), nil
}

func (s *Service) codes(_ http.ResponseWriter, r *http.Request, _ struct{}) (endpoint.Renderer, error) {
	return endpoint.Negotiate(r, http.StatusOK, jsonrpc.StandardCodes()), nil
}

// options answers OPTIONS requests that are not CORS preflights, which the
// security header processor handles itself.
func (s *Service) options(_ http.ResponseWriter, _ *http.Request, _ struct{}) (endpoint.Renderer, error) {
	return &endpoint.NoContentRenderer{}, nil
}
