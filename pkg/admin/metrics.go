package admin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hollowoak/kafkaadmin/pkg/protocol"
)

type adminMetrics struct {
	reg prometheus.Registerer

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	controllerRefreshes prometheus.Counter
}

func newAdminMetrics(reg prometheus.Registerer) *adminMetrics {
	return &adminMetrics{
		reg: reg,
		requestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "kafkaadmin",
			Name:      "requests_total",
			Help:      "Admin requests sent, by api key and outcome.",
		}, []string{"api", "outcome"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kafkaadmin",
			Name:      "request_duration_seconds",
			Help:      "Admin request round-trip duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"api"}),
		controllerRefreshes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "kafkaadmin",
			Name:      "controller_refreshes_total",
			Help:      "Times the cached controller id was re-resolved.",
		}),
	}
}

func (m *adminMetrics) observe(key protocol.ApiKey, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.requestsTotal.WithLabelValues(key.String(), outcome).Inc()
	m.requestDuration.WithLabelValues(key.String()).Observe(d.Seconds())
}

// close unregisters the collectors so a new client can register cleanly
// against the same registerer.
func (m *adminMetrics) close() {
	m.reg.Unregister(m.requestsTotal)
	m.reg.Unregister(m.requestDuration)
	m.reg.Unregister(m.controllerRefreshes)
}
