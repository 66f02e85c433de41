package models

import (
	"math"
	"strings"
	"time"
)

// StatusActive marks the subscription treated as current.
const StatusActive = "active"

// PlanType enumerates subscription tiers as sent by the API.
type PlanType string

const (
	PlanDaily   PlanType = "1-day"
	PlanMonthly PlanType = "1-month"
)

// Label maps the plan tier to its marketing name.
func (p PlanType) Label() string {
	switch p {
	case PlanDaily:
		return "Basic"
	case PlanMonthly:
		return "Standard"
	default:
		return "Premium"
	}
}

// Subscription is a single subscription record for the signed-in user.
//
// Dates are kept as sent by the API and parsed on demand, so a malformed
// timestamp degrades to "N/A" instead of failing the whole response.
type Subscription struct {
	ID        int      `json:"id"`
	PlanType  PlanType `json:"plan_type"`
	Status    string   `json:"status"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	ExpiresAt string   `json:"expires_at,omitempty"`
}

// Active reports whether the record's status is "active".
func (s Subscription) Active() bool {
	return s.Status == StatusActive
}

// End returns the parsed end date.
func (s Subscription) End() (time.Time, bool) {
	return ParseTimestamp(s.EndDate)
}

// StartLabel returns the start date for display.
func (s Subscription) StartLabel() string { return orNA(s.StartDate) }

// EndLabel returns the end date for display.
func (s Subscription) EndLabel() string { return orNA(s.EndDate) }

// ActiveSubscription returns the first subscription with status "active", or nil.
func ActiveSubscription(subs []Subscription) *Subscription {
	for i := range subs {
		if subs[i].Active() {
			sub := subs[i]
			return &sub
		}
	}
	return nil
}

// DaysLeft returns the whole days remaining until end, rounded up and never negative.
func DaysLeft(end, now time.Time) int {
	diff := end.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp parses the date formats the API is known to emit.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
