package container

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a Registry or Container at construction time.
type Option func(*options)

// WithLogger sets the logger that receives registration and resolution
// events. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
