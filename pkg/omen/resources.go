package omen

import "time"

// Entity represents a threat-intelligence entity (IP, domain, hash, ...).
type Entity struct {
	ID          string   `json:"id"                    yaml:"id"`
	Name        string   `json:"name"                  yaml:"name"`
	Type        string   `json:"type"                  yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	RiskScore   int      `json:"risk_score"            yaml:"risk_score"`
	RiskLevel   string   `json:"risk_level,omitempty"  yaml:"risk_level,omitempty"`
	Evidence    []string `json:"evidence,omitempty"    yaml:"evidence,omitempty"`

	FirstSeen *time.Time `json:"first_seen,omitempty" yaml:"first_seen,omitempty"`
	LastSeen  *time.Time `json:"last_seen,omitempty"  yaml:"last_seen,omitempty"`
}

// EntityList represents a paged list of entities.
type EntityList struct {
	Counts ListCounts `json:"counts" yaml:"counts"`
	Data   []Entity   `json:"data"   yaml:"data"`
}

// AlertRule represents a configured alerting rule.
type AlertRule struct {
	ID      string `json:"id"      yaml:"id"`
	Title   string `json:"title"   yaml:"title"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// AlertRuleList represents a paged list of alert rules.
type AlertRuleList struct {
	Counts ListCounts  `json:"counts" yaml:"counts"`
	Data   []AlertRule `json:"data"   yaml:"data"`
}

// Alert represents a triggered alert.
type Alert struct {
	ID        string    `json:"id"              yaml:"id"`
	Title     string    `json:"title"           yaml:"title"`
	Status    string    `json:"status"          yaml:"status"`
	Triggered time.Time `json:"triggered"       yaml:"triggered"`
	Rule      AlertRule `json:"rule"            yaml:"rule"`
	URL       string    `json:"url,omitempty"   yaml:"url,omitempty"`
	Entities  []Entity  `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// AlertList represents a paged list of alerts.
type AlertList struct {
	Counts ListCounts `json:"counts" yaml:"counts"`
	Data   []Alert    `json:"data"   yaml:"data"`
}

// ListCounts carries paging metadata returned by list endpoints.
type ListCounts struct {
	Returned int `json:"returned" yaml:"returned"`
	Total    int `json:"total"    yaml:"total"`
}
