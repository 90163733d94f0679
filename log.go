package pixel

import goLog "log"

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// Logger receives sparse diagnostic messages from key-lifecycle
// transitions. It is never consulted on the sign/verify hot path.
type Logger interface {
	Logf(format string, a ...interface{})
}

// EnableLogging sends log output to the standard log package. For more
// flexibility, see SetLogger.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as the destination for diagnostic output.
// Passing nil disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
