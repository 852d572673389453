package typlate

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors of a compiler.
// A nil *metrics records nothing.
type metrics struct {
	parses  *prometheus.CounterVec
	issues  *prometheus.CounterVec
	reloads *prometheus.CounterVec
}

// newMetrics registers the collectors with reg. Collectors already
// registered by another compiler on the same registry are shared.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      MetricParseTotal,
				Help:      MetricHelpParseTotal,
			},
			[]string{MetricLabelResult},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      MetricCheckIssuesTotal,
				Help:      MetricHelpCheckIssues,
			},
			[]string{MetricLabelReason},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      MetricCatalogReloads,
				Help:      MetricHelpCatalogReload,
			},
			[]string{MetricLabelResult},
		),
	}

	var err error
	if m.parses, err = register(reg, m.parses); err != nil {
		return nil, err
	}
	if m.issues, err = register(reg, m.issues); err != nil {
		return nil, err
	}
	if m.reloads, err = register(reg, m.reloads); err != nil {
		return nil, err
	}
	return m, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, err
}

// parsed counts a Parse outcome; err is nil on success.
func (m *metrics) parsed(err error) {
	if m == nil {
		return
	}
	result := MetricResultOK
	if err != nil {
		result = reasonOf(err)
		if result == "" {
			result = MetricResultError
		}
	}
	m.parses.WithLabelValues(result).Inc()
}

func (m *metrics) checked(issues []Issue) {
	if m == nil {
		return
	}
	for _, issue := range issues {
		m.issues.WithLabelValues(issue.Reason).Inc()
	}
}

func (m *metrics) reloaded(err error) {
	if m == nil {
		return
	}
	result := MetricResultOK
	if err != nil {
		result = MetricResultError
	}
	m.reloads.WithLabelValues(result).Inc()
}
