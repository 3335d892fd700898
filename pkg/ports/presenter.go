package ports

import "github.com/aretw0/scenarist/pkg/domain"

// Presenter shows ephemeral, non-blocking feedback.
// It has no error conditions: when the surface is unavailable it is a no-op.
type Presenter interface {
	Show(message string, severity domain.Severity)
}
