package pool

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. Pools created
// without an explicit Options.Log use this.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logAttrs returns the base attributes attached to every diagnostic
// record this pool emits, so related records can be correlated by pool
// identity in aggregated logs.
func (p *Pool) logAttrs() []any {
	return []any{slog.String("pool_id", p.id.String())}
}

func (p *Pool) debugf(msg string, args ...any) {
	p.log.Debug(msg, append(p.logAttrs(), args...)...)
}

func (p *Pool) errorf(msg string, args ...any) {
	p.log.Error(msg, append(p.logAttrs(), args...)...)
}
