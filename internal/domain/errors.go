package domain

import "errors"

var (
	ErrDataSourceNotFound  = errors.New("data source not found")
	ErrNoWakeTimeEstimable = errors.New("no wake time estimable")
	ErrMalformedPoint      = errors.New("malformed data point")
	ErrCheckInFlight       = errors.New("wake alert check already in flight")
)
