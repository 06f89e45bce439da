package mipcore

import "github.com/rs/zerolog"

// Logger is a small structured-logging facade the engine's drivers take
// instead of reaching for fmt.Println directly (AMBIENT STACK §1).
// GROUNDED on the joeycumines/go-utilpkg pack's logiface -> logiface-
// zerolog adapter pattern: a thin facade type wrapping a concrete
// zerolog.Logger, so the engine's call sites stay in terms of a small
// vocabulary of leveled, structured-field events rather than zerolog's
// full API.
type Logger struct {
	z zerolog.Logger
}

// NewLogger wraps z in the engine's facade.
func NewLogger(z zerolog.Logger) *Logger { return &Logger{z: z} }

// NopLogger returns a Logger that discards everything, for callers that
// don't want diagnostics (e.g. most unit tests).
func NopLogger() *Logger { return &Logger{z: zerolog.Nop()} }

func (l *Logger) NodeFocused(node NodeID, depth int, lower float64) {
	l.z.Debug().Int("node", int(node)).Int("depth", depth).Float64("lower", lower).Msg("node focused")
}

func (l *Logger) StatusChanged(st Status) {
	l.z.Info().Str("status", st.String()).Msg("status changed")
}

func (l *Logger) LPError(op string, err error) {
	l.z.Warn().Str("op", op).Err(err).Msg("LP error")
}

func (l *Logger) Restart(kind string, n int64) {
	l.z.Info().Str("kind", kind).Int64("count", n).Msg("restart")
}

func (l *Logger) Cutoff(node NodeID, lower float64) {
	l.z.Debug().Int("node", int(node)).Float64("lower", lower).Msg("node cut off")
}

func (l *Logger) SolutionFound(objVal float64) {
	l.z.Info().Float64("obj", objVal).Msg("solution found")
}

func (l *Logger) Fatal(err *FatalError) {
	l.z.Error().Str("plugin", err.Plugin).Str("reason", err.Reason).Msg("protocol violation")
}
