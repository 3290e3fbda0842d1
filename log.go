package argon

import (
	"github.com/sirupsen/logrus"
)

// newLogger returns base tagged with the package and function name.
// A nil base falls back to the logrus standard logger.
func newLogger(base logrus.FieldLogger, function string) logrus.FieldLogger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return base.WithFields(logrus.Fields{
		"package":  "argon",
		"function": function,
	})
}

// paramFields describes p for structured logs.
func paramFields(p *Params) logrus.Fields {
	return logrus.Fields{
		"variant":    p.Variant.String(),
		"version":    uint32(p.Version),
		"iterations": p.Iterations,
		"memory_kib": p.Memory,
		"lanes":      p.Lanes,
		"threads":    p.workers(),
		"tag_length": p.TagLength,
	}
}

// sizeFields records only the length of sensitive inputs, never their
// contents.
func sizeFields(password, salt, secret, data []byte) logrus.Fields {
	return logrus.Fields{
		"password_size": len(password),
		"salt_size":     len(salt),
		"secret_size":   len(secret),
		"data_size":     len(data),
	}
}
