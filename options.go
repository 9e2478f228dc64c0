package ovsdb

import (
	"crypto/tls"

	"github.com/sirupsen/logrus"
)

type options struct {
	tlsConfig *tls.Config
	logger    logrus.FieldLogger
}

func defaultOptions() *options {
	return &options{logger: logrus.StandardLogger()}
}

// Option configures a Client at Dial time.
type Option func(*options)

// WithTLSConfig dials "ssl" endpoints with the given TLS configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) { o.tlsConfig = cfg }
}

// WithLogger replaces the default standard logger used for connection and
// frame-level logging.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}
