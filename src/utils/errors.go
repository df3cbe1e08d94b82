package utils

import "errors"

var (
	// ErrUpstreamUnavailable means the market data provider could not be reached,
	// timed out or answered with something that could not be decoded.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMetricUnavailable means the upstream answered but the requested field is absent.
	ErrMetricUnavailable = errors.New("metric unavailable")
	// ErrInsufficientData means a statistic is undefined for the given series.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInsufficientHolding means a removal would drive a holding below zero.
	ErrInsufficientHolding = errors.New("insufficient holding")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidArgument     = errors.New("invalid argument")
)
