package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Routes for Chinese targets.
const (
	RouteGeneric    = "generic"
	RouteBestEffort = "besteffort"
)

// Config holds gateway settings for a Resolver.
type Config struct {
	GenericURL    string
	BestEffortURL string
	// ChineseRoute picks the gateway for Chinese targets: "generic" or
	// "besteffort". Other targets always use the generic gateway.
	ChineseRoute string
	Timeout      time.Duration
	Breaker      BreakerSettings
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() *Config {
	return &Config{
		GenericURL:    DefaultGenericURL,
		BestEffortURL: DefaultBestEffortURL,
		ChineseRoute:  RouteBestEffort,
		Timeout:       15 * time.Second,
		Breaker: BreakerSettings{
			ConsecutiveFailures: 5,
			OpenTimeout:         30 * time.Second,
		},
	}
}

// Resolver validates requests, selects a gateway and normalises the outcome.
type Resolver struct {
	generic    Gateway
	bestEffort Gateway
	route      string
	logger     *zap.Logger
}

// NewResolver builds both gateways from config.
func NewResolver(config *Config, logger *zap.Logger) (*Resolver, error) {
	if config == nil {
		config = DefaultConfig()
	}

	generic := WithBreaker(NewLingvaGateway(config.GenericURL, config.Timeout), config.Breaker)
	bestEffort := WithBreaker(NewGoogleGateway(config.BestEffortURL, config.Timeout), config.Breaker)

	return NewResolverWithGateways(generic, bestEffort, config.ChineseRoute, logger)
}

// NewResolverWithGateways wires explicit gateways. bestEffort may be nil when
// route is RouteGeneric.
func NewResolverWithGateways(generic, bestEffort Gateway, route string, logger *zap.Logger) (*Resolver, error) {
	if generic == nil {
		return nil, fmt.Errorf("generic gateway is required")
	}
	switch route {
	case "":
		route = RouteBestEffort
	case RouteGeneric, RouteBestEffort:
	default:
		return nil, fmt.Errorf("unknown chinese route: %s", route)
	}
	if route == RouteBestEffort && bestEffort == nil {
		return nil, fmt.Errorf("best-effort gateway is required for route %s", route)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		generic:    generic,
		bestEffort: bestEffort,
		route:      route,
		logger:     logger.Named("resolver"),
	}, nil
}

// Resolve runs one resolution. Invalid requests fail before any network call;
// otherwise exactly one gateway request is made. The returned error is
// always an *Error.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	gateway := r.gatewayFor(req.TargetLang)
	r.logger.Debug("resolving translation",
		zap.String("gateway", gateway.Name()),
		zap.String("source", req.SourceLang),
		zap.String("target", req.TargetLang),
		zap.Int("chars", len([]rune(req.Text))))

	result, err := gateway.Translate(ctx, req)
	if err != nil {
		err = normalize(gateway.Name(), err)
		r.logFailure(gateway.Name(), err)
		return nil, err
	}

	return result, nil
}

// Gateway returns the gateway that Resolve would use for targetLang.
func (r *Resolver) Gateway(targetLang string) Gateway {
	return r.gatewayFor(targetLang)
}

func (r *Resolver) gatewayFor(targetLang string) Gateway {
	if IsChinese(targetLang) && r.route == RouteBestEffort {
		return r.bestEffort
	}
	return r.generic
}

// normalize maps foreign errors from custom gateways onto the taxonomy.
func normalize(gateway string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return transportError(gateway, err)
}

func (r *Resolver) logFailure(gateway string, err error) {
	var e *Error
	if !errors.As(err, &e) {
		return
	}

	fields := []zap.Field{zap.String("gateway", gateway), zap.Stringer("kind", e.Kind)}

	var status *StatusError
	if errors.As(err, &status) {
		fields = append(fields, zap.Int("status", status.StatusCode), zap.String("body", status.Body))
	} else if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}

	if e.Kind == KindCanceled {
		r.logger.Debug("translation canceled", fields...)
		return
	}
	r.logger.Warn("translation failed", fields...)
}
