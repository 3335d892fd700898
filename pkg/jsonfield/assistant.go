package jsonfield

import (
	"log/slog"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/ports"
)

// Messages shown after a format attempt.
const (
	MsgFormatted   = "JSON отформатирован"
	MsgParseFailed = "Ошибка в JSON: "
)

// Assistant formats data fields in place and reports the outcome to the author.
type Assistant struct {
	presenter ports.Presenter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option configures the Assistant.
type Option func(*Assistant)

// WithMetrics records format outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assistant) {
		a.metrics = m
	}
}

// WithLogger configures a logger for the Assistant.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// NewAssistant creates an Assistant reporting through presenter.
func NewAssistant(presenter ports.Presenter, opts ...Option) *Assistant {
	a := &Assistant{
		presenter: presenter,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FormatField pretty-prints the named field.
// On a parse error the field is left unchanged and the parser message is shown.
// A missing field is a silent no-op.
func (a *Assistant) FormatField(f ports.Fields, name string) error {
	text, ok := f.Value(name)
	if !ok {
		a.logger.Debug("format skipped, field not found", "field", name)
		return nil
	}

	formatted, err := Format(text)
	if err != nil {
		a.metrics.FormatAttempt(false)
		a.show(MsgParseFailed+err.Error(), domain.SeverityError)
		return err
	}

	f.SetValue(name, formatted)
	a.metrics.FormatAttempt(true)
	a.show(MsgFormatted, domain.SeveritySuccess)
	return nil
}

func (a *Assistant) show(msg string, sev domain.Severity) {
	if a.presenter != nil {
		a.presenter.Show(msg, sev)
	}
}
