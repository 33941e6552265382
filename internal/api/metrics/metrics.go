// Package metrics defines the HealthyAura client Prometheus metrics. They are
// registered with the default registry on import and served on /metrics.
package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

const namespace = "healthyaura"

// ── Session ──────────────────────────────────────────────────────────────────

// LoginsTotal counts sign-in attempts.
// Label:
//   - outcome: "ok" or the classified failure (e.g. "invalid_credentials", "account_temporarily_locked")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Sign-in attempts by outcome.",
	},
	[]string{"outcome"},
)

// SignOutsTotal counts sign-outs.
var SignOutsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "signouts_total",
	Help:      "Sign-outs.",
})

// ── Reviews ──────────────────────────────────────────────────────────────────

// ReviewMutationsTotal counts review writes.
// Labels:
//   - op: create, update, delete, flag
//   - outcome: "ok" or the classified failure
var ReviewMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_mutations_total",
		Help:      "Review create/update/delete/flag requests by outcome.",
	},
	[]string{"op", "outcome"},
)

// ── Moderation ───────────────────────────────────────────────────────────────

// ModerationActionsTotal counts admin actions.
// Labels:
//   - action: REMOVE, DISMISS, hide, delete
//   - outcome: "ok" or the classified failure
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Moderation actions by outcome.",
	},
	[]string{"action", "outcome"},
)

// ── Recommendations / rewards ────────────────────────────────────────────────

// RecommendationFetchesTotal counts home page loads.
// Label:
//   - result: full, partial, failed
var RecommendationFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_fetches_total",
		Help:      "Recommendation fetches by completeness.",
	},
	[]string{"result"},
)

// RedemptionsTotal counts reward redemptions.
var RedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reward_redemptions_total",
		Help:      "Reward redemptions by outcome.",
	},
	[]string{"outcome"},
)

// Outcome turns an error into a label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return strings.ReplaceAll(de.Reason.Error(), " ", "_")
	}
	return "error"
}
