//go:generate mockgen -destination=mocks/mock_validator.go -package=mocks github.com/go-training/oauth-authorize/pkg/authorize Validator

// Package authorize runs the ordered parameter checks of an OAuth 2.0
// authorization request and produces a single verdict.
package authorize

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
	"github.com/go-training/oauth-authorize/pkg/result"
)

const tracerName = "github.com/go-training/oauth-authorize/pkg/authorize"

// Validator is the set of parameter checks the service runs.
// *validator.ParameterValidator implements it.
type Validator interface {
	ValidateClientID(ctx context.Context, clientID string) result.Result[*core.Client]
	ValidateRedirectURI(redirectURI string, client *core.Client) result.Result[*url.URL]
	ValidateResponseType(responseType string, client *core.Client) result.Result[[]string]
	ValidateScope(ctx context.Context, scope string) result.Result[[]string]
}

// Option configures a Service.
type Option func(*Service)

// WithTracerProvider sets the provider used for request spans. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// Service validates authorization requests. It keeps no per-request state;
// concurrent calls are independent.
type Service struct {
	validator Validator
	tracer    trace.Tracer
	steps     []step
}

// progress accumulates what the steps of one validation pass resolved.
type progress struct {
	client        *core.Client
	redirectURI   *url.URL
	responseTypes []string
	scopes        []string
}

type step struct {
	stage Stage
	run   func(ctx context.Context, req *core.AuthorizationRequest, p progress) result.Result[progress]
}

// NewService creates a Service running v's checks.
func NewService(v Validator, opts ...Option) *Service {
	if v == nil {
		panic("authorize: nil validator")
	}
	s := &Service{
		validator: v,
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.steps = []step{
		{StageClientID, s.checkClientID},
		{StageRedirectURI, s.checkRedirectURI},
		{StageResponseType, s.checkResponseType},
		{StageScope, s.checkScope},
	}
	return s
}

// ValidateRequest runs client_id, redirect_uri, response_type and scope
// validation in that order and stops at the first failure. Every step after
// the first works on the client resolved by the first.
//
// It panics if req is nil.
func (s *Service) ValidateRequest(ctx context.Context, req *core.AuthorizationRequest) *Result {
	if req == nil {
		panic("authorize: ValidateRequest called with nil request")
	}

	ctx, span := s.tracer.Start(ctx, "authorize.ValidateRequest", trace.WithAttributes(
		attribute.String("oauth.client_id", req.ClientID),
		attribute.String("oauth.response_type", req.ResponseType),
	))
	defer span.End()

	stage := StageClientID
	var resolved progress
	r := result.Success(progress{})
	for _, st := range s.steps {
		r = result.Then(r, func(p progress) result.Result[progress] {
			stage, resolved = st.stage, p
			span.AddEvent(st.stage.String())
			return st.run(ctx, req, p)
		})
	}

	if r.IsFailure() {
		// Values resolved before the failing step are still reported so the
		// caller knows whether the redirect target was verified.
		return s.reject(ctx, span, req, stage, resolved, r.Err())
	}

	p := r.MustValue()
	span.SetAttributes(attribute.String("oauth.stage", StageDone.String()))
	core.LoggerFromCtx(ctx).Debug("authorization request accepted",
		"client_id", req.ClientID,
		"redirect_uri", p.redirectURI.String(),
		"response_types", p.responseTypes,
		"scopes", p.scopes,
	)

	return &Result{
		Request:       req,
		Valid:         true,
		Stage:         StageDone,
		Client:        p.client,
		RedirectURI:   p.redirectURI,
		ResponseTypes: p.responseTypes,
		Scopes:        p.scopes,
	}
}

func (s *Service) reject(
	ctx context.Context,
	span trace.Span,
	req *core.AuthorizationRequest,
	stage Stage,
	resolved progress,
	oerr *oautherr.Error,
) *Result {
	span.SetAttributes(
		attribute.String("oauth.stage", stage.String()),
		attribute.String("oauth.error", oerr.Code),
	)
	span.SetStatus(codes.Error, oerr.Code)

	core.LoggerFromCtx(ctx).Info("authorization request rejected",
		"client_id", req.ClientID,
		"stage", stage.String(),
		"error", oerr.Code,
	)

	return &Result{
		Request:     req,
		Valid:       false,
		Err:         oerr,
		Stage:       stage,
		Client:      resolved.client,
		RedirectURI: resolved.redirectURI,
	}
}

func (s *Service) checkClientID(ctx context.Context, req *core.AuthorizationRequest, p progress) result.Result[progress] {
	return result.Then(s.validator.ValidateClientID(ctx, req.ClientID), func(c *core.Client) result.Result[progress] {
		p.client = c
		return result.Success(p)
	})
}

func (s *Service) checkRedirectURI(_ context.Context, req *core.AuthorizationRequest, p progress) result.Result[progress] {
	return result.Then(s.validator.ValidateRedirectURI(req.RedirectURI, p.client), func(u *url.URL) result.Result[progress] {
		p.redirectURI = u
		return result.Success(p)
	})
}

func (s *Service) checkResponseType(_ context.Context, req *core.AuthorizationRequest, p progress) result.Result[progress] {
	return result.Then(s.validator.ValidateResponseType(req.ResponseType, p.client), func(types []string) result.Result[progress] {
		p.responseTypes = types
		return result.Success(p)
	})
}

func (s *Service) checkScope(ctx context.Context, req *core.AuthorizationRequest, p progress) result.Result[progress] {
	return result.Then(s.validator.ValidateScope(ctx, req.Scope), func(scopes []string) result.Result[progress] {
		p.scopes = scopes
		return result.Success(p)
	})
}
