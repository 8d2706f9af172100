package log

import "go.uber.org/zap"

type Option = zap.Option

var (
	Fields        = zap.Fields
	AddCallerSkip = zap.AddCallerSkip
	AddStacktrace = zap.AddStacktrace
)
