package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/tweakable"
)

// Primitive labels.
const (
	PRF = "prf"
	F   = "f"
	H   = "h"
)

// Metrics counts tweakable hash invocations on a private registry, so the
// number of core hash calls an operation makes can be compared with the
// cycle budget of a hardware core.
type Metrics struct {
	Registry *prometheus.Registry
	Calls    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wots_tweak_calls_total",
				Help: "Number of tweakable hash invocations",
			},
			[]string{"primitive"},
		),
	}
	m.Registry.MustRegister(m.Calls)
	return m
}

// Instrument returns a copy of params whose tweakable hash reports to m.
func (m *Metrics) Instrument(params *parameters.Parameters) *parameters.Parameters {
	instrumented := *params
	instrumented.Tweak = m.Wrap(params.Tweak)
	return &instrumented
}

// Wrap decorates inner with call counters.
func (m *Metrics) Wrap(inner tweakable.TweakableHashFunction) *InstrumentedTweak {
	return &InstrumentedTweak{
		inner: inner,
		prf:   m.Calls.WithLabelValues(PRF),
		f:     m.Calls.WithLabelValues(F),
		h:     m.Calls.WithLabelValues(H),
	}
}

// Counts gathers the current value of every primitive counter.
func (m *Metrics) Counts() (map[string]float64, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}
	counts := map[string]float64{PRF: 0, F: 0, H: 0}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "primitive" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	return counts, nil
}

// InstrumentedTweak counts calls per primitive. The prf counter includes
// the key and bitmask derivations inside F and H, so it is the number of
// PRF evaluations a core performs.
type InstrumentedTweak struct {
	inner tweakable.TweakableHashFunction
	prf   prometheus.Counter
	f     prometheus.Counter
	h     prometheus.Counter
}

func (t *InstrumentedTweak) PRF(key []byte, data []byte) []byte {
	t.prf.Inc()
	return t.inner.PRF(key, data)
}

func (t *InstrumentedTweak) F(in []byte, pubSeed []byte, addr *address.Address) []byte {
	t.f.Inc()
	t.prf.Add(tweakable.PRFPerF)
	return t.inner.F(in, pubSeed, addr)
}

func (t *InstrumentedTweak) H(in []byte, pubSeed []byte, addr *address.Address) []byte {
	t.h.Inc()
	t.prf.Add(tweakable.PRFPerH)
	return t.inner.H(in, pubSeed, addr)
}
