package xdiag

import "errors"

var (
	// ErrNilMeter WithMeter 传入 nil meter
	ErrNilMeter = errors.New("xdiag: meter must not be nil")
)
