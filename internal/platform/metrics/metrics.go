package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the account flows.
type Metrics struct {
	SignInOutcomes         *prometheus.CounterVec
	SessionsIssued         prometheus.Counter
	UsersCreated           prometheus.Counter
	OneTimePasswordsIssued *prometheus.CounterVec
	MessagesSent           *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry. Call once
// per process.
func New() *Metrics {
	return &Metrics{
		SignInOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worldsmith_sign_in_outcomes_total",
			Help: "Sign-in orchestrations by outcome kind",
		}, []string{"outcome"}),
		SessionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worldsmith_sessions_issued_total",
			Help: "Sessions created after passing the completion gate",
		}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worldsmith_users_created_total",
			Help: "Users provisioned from authentication tokens",
		}),
		OneTimePasswordsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worldsmith_one_time_passwords_issued_total",
			Help: "One-time passwords issued by purpose",
		}, []string{"purpose"}),
		MessagesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worldsmith_messages_sent_total",
			Help: "Messages dispatched by contact type",
		}, []string{"contact_type"}),
	}
}

func (m *Metrics) ObserveSignInOutcome(kind string) {
	m.SignInOutcomes.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementSessionsIssued() {
	m.SessionsIssued.Inc()
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementOneTimePasswordsIssued(purpose string) {
	m.OneTimePasswordsIssued.WithLabelValues(purpose).Inc()
}

func (m *Metrics) IncrementMessagesSent(contactType string) {
	m.MessagesSent.WithLabelValues(contactType).Inc()
}
