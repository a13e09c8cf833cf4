// Package metrics implements linkframe.Observer as a set of
// Prometheus collectors, following the gobfd Collector convention:
// a namespaced struct of metric vectors registered once at
// construction.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/barnettlynn/linkguard/pkg/linkframe"
)

const (
	namespace = "linkguard"
	subsystem = "frame"
)

const labelReason = "reason"

// Collector holds the Prometheus metrics exposed for decode
// diagnostics, satisfying linkframe.Observer.
type Collector struct {
	FramesDecoded   prometheus.Counter
	FramesRejected  *prometheus.CounterVec
	ReplayRejected  prometheus.Counter
	SequenceWrapped prometheus.Counter
}

var _ linkframe.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics against
// reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		FramesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decoded_total",
			Help:      "Total frames that decoded and authenticated successfully.",
		}),
		FramesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "Total frames rejected, labeled by error kind.",
		}, []string{labelReason}),
		ReplayRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "replay_rejected_total",
			Help:      "Total frames rejected specifically for sequence replay.",
		}),
		SequenceWrapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sequence_wrap_total",
			Help:      "Total sign attempts that found the session's sequence space exhausted.",
		}),
	}

	reg.MustRegister(c.FramesDecoded, c.FramesRejected, c.ReplayRejected, c.SequenceWrapped)
	return c
}

// OnDecoded implements linkframe.Observer.
func (c *Collector) OnDecoded(frameType byte, flags byte) {
	c.FramesDecoded.Inc()
}

// OnRejected implements linkframe.Observer.
func (c *Collector) OnRejected(kind linkframe.ErrorKind) {
	c.FramesRejected.WithLabelValues(kind.String()).Inc()
	switch kind {
	case linkframe.ErrKindReplay:
		c.ReplayRejected.Inc()
	case linkframe.ErrKindSequenceWrap:
		c.SequenceWrapped.Inc()
	}
}
