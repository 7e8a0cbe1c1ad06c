package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("auth-metrics")

// AuthMetrics provides metrics collection for authentication events
type AuthMetrics struct {
	signupsCounter         metric.Int64Counter
	loginsCounter          metric.Int64Counter
	loginFailuresCounter   metric.Int64Counter
	tokenRejectionsCounter metric.Int64Counter
}

// NewAuthMetrics creates a new auth metrics collector
func NewAuthMetrics() (*AuthMetrics, error) {
	signupsCounter, err := meter.Int64Counter(
		"devconnect.auth.signups",
		metric.WithDescription("Total number of accounts created"),
		metric.WithUnit("{account}"),
	)
	if err != nil {
		return nil, err
	}

	loginsCounter, err := meter.Int64Counter(
		"devconnect.auth.logins",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	loginFailuresCounter, err := meter.Int64Counter(
		"devconnect.auth.login_failures",
		metric.WithDescription("Total number of rejected login attempts"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	tokenRejectionsCounter, err := meter.Int64Counter(
		"devconnect.auth.token_rejections",
		metric.WithDescription("Total number of requests rejected by the auth guard"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &AuthMetrics{
		signupsCounter:         signupsCounter,
		loginsCounter:          loginsCounter,
		loginFailuresCounter:   loginFailuresCounter,
		tokenRejectionsCounter: tokenRejectionsCounter,
	}, nil
}

// RecordSignup records a successful account creation
func (am *AuthMetrics) RecordSignup(ctx context.Context) {
	am.signupsCounter.Add(ctx, 1)
}

// RecordLogin records a successful login
func (am *AuthMetrics) RecordLogin(ctx context.Context) {
	am.loginsCounter.Add(ctx, 1)
}

// RecordLoginFailure records a rejected login attempt. The reason is a
// coarse category (unknown_email, wrong_password), never the credential.
func (am *AuthMetrics) RecordLoginFailure(ctx context.Context, reason string) {
	am.loginFailuresCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}

// RecordTokenRejection records a request turned away by the auth guard
func (am *AuthMetrics) RecordTokenRejection(ctx context.Context, reason string) {
	am.tokenRejectionsCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}
