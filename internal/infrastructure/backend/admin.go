package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

const moderationPath = "/admin/review-moderation"

func (c *Client) DashboardMetrics(ctx context.Context, token string) (*domain.DashboardMetrics, error) {
	var w metricsWire
	if err := c.do(ctx, call{op: "dashboard_metrics", method: http.MethodGet, path: "/admin/dashboard/metrics", token: token}, &w); err != nil {
		return nil, err
	}
	return w.domain(), nil
}

func (c *Client) ListFlags(ctx context.Context, token string, status domain.FlagStatus) ([]domain.Flag, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	return c.flags(ctx, call{op: "list_flags", method: http.MethodGet, path: "/admin/dashboard/flags", query: q, token: token})
}

func (c *Client) FlagsByReason(ctx context.Context, token, reason string, status domain.FlagStatus) ([]domain.Flag, error) {
	q := url.Values{"reason": {reason}}
	if status != "" {
		q.Set("status", string(status))
	}
	return c.flags(ctx, call{op: "flags_by_reason", method: http.MethodGet, path: "/admin/dashboard/flags/by-reason", query: q, token: token})
}

func (c *Client) flags(ctx context.Context, cl call) ([]domain.Flag, error) {
	var wires []flagWire
	if err := c.do(ctx, cl, &wires); err != nil {
		return nil, err
	}
	out := make([]domain.Flag, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.domain())
	}
	return out, nil
}

func (c *Client) RecentActions(ctx context.Context, token string) ([]domain.AdminAction, error) {
	return c.actions(ctx, call{op: "recent_actions", method: http.MethodGet, path: "/admin/dashboard/recent-summary", token: token})
}

func (c *Client) ActionLog(ctx context.Context, token string) ([]domain.AdminAction, error) {
	return c.actions(ctx, call{op: "action_log", method: http.MethodGet, path: "/admin/logs", token: token})
}

func (c *Client) actions(ctx context.Context, cl call) ([]domain.AdminAction, error) {
	var wires []actionWire
	if err := c.do(ctx, cl, &wires); err != nil {
		return nil, err
	}
	out := make([]domain.AdminAction, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.domain())
	}
	return out, nil
}

// ResolveFlag applies REMOVE or DISMISS. The API answers with a message only.
func (c *Client) ResolveFlag(ctx context.Context, token, flagID string, action domain.ResolveAction, notes string) (*domain.Flag, error) {
	q := url.Values{"action": {string(action)}}
	if strings.TrimSpace(notes) != "" {
		q.Set("notes", notes)
	}
	err := c.do(ctx, call{
		op:     "resolve_flag",
		method: http.MethodPut,
		path:   moderationPath + "/flags/" + idPath(flagID) + "/resolve",
		query:  q,
		token:  token,
	}, nil)
	if err != nil {
		return nil, err
	}
	return &domain.Flag{ID: flagID, Status: action.Outcome(), AdminNotes: notes}, nil
}

func (c *Client) HideReview(ctx context.Context, token, reviewID, reason string) error {
	return c.do(ctx, call{
		op:     "hide_review",
		method: http.MethodPut,
		path:   moderationPath + "/reviews/" + idPath(reviewID) + "/hide",
		query:  url.Values{"reason": {reason}},
		token:  token,
	}, nil)
}

// RemoveReview deletes a review as an admin.
func (c *Client) RemoveReview(ctx context.Context, token, reviewID, reason string) error {
	return c.do(ctx, call{
		op:     "admin_delete_review",
		method: http.MethodDelete,
		path:   moderationPath + "/reviews/" + idPath(reviewID),
		query:  url.Values{"reason": {reason}},
		token:  token,
	}, nil)
}
