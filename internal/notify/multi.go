package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrunoTulio/logr"
)

type MultiNotifier struct {
	notifiers      []Notifier
	successEnabled bool
	errorEnabled   bool
	log            logr.Logger
}

func NewMultiNotifier(
	successEnabled bool,
	errorEnabled bool,
	log logr.Logger,
) *MultiNotifier {
	return &MultiNotifier{
		successEnabled: successEnabled,
		errorEnabled:   errorEnabled,
		log:            log,
	}
}

func (m *MultiNotifier) AddNotifier(notifier Notifier) {
	m.notifiers = append(m.notifiers, notifier)
}

func (m *MultiNotifier) Len() int {
	return len(m.notifiers)
}

// Notify fans event out to every notifier. It fails only when all of
// them failed.
func (m *MultiNotifier) Notify(ctx context.Context, event Event) error {
	if event.Success && !m.successEnabled {
		return nil
	}
	if !event.Success && !m.errorEnabled {
		return nil
	}

	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
			m.log.Warnf("Notifier failed: %v", err)
		}
	}

	if len(errs) > 0 && len(errs) == len(m.notifiers) {
		return fmt.Errorf("all notifiers failed: %w", errors.Join(errs...))
	}
	return nil
}
