package model

import "time"

// PlanRun is the history record of one planning request.
//
// @Description Recorded planning request and its outcome
type PlanRun struct {
	ID        string    `json:"id" example:"6650c1f2a4b0b3e1d2c3f4a5"`
	RequestID string    `json:"request_id,omitempty" example:"4b0c0c52-91b4-4a4e-9a45-6b5fd5f2b7d2"`
	CreatedAt time.Time `json:"created_at"`
	// CatalogVersion is the stored catalog version used, or 0 for an inline catalog.
	CatalogVersion int `json:"catalog_version" example:"3"`
	// Fingerprint identifies the solver input; equal fingerprints yield equal plans.
	Fingerprint     string      `json:"fingerprint" example:"9f2a1c..."`
	Preferences     Preferences `json:"preferences"`
	Status          Status      `json:"status,omitempty" example:"optimal"`
	ChosenRecipeIDs []string    `json:"chosen_recipe_ids,omitempty"`
	Objective       float64     `json:"objective" example:"101.5"`
	Spend           float64     `json:"spend" example:"37.45"`
	Nodes           int64       `json:"nodes" example:"1834"`
	DurationMS      int64       `json:"duration_ms" example:"5"`
	Cached          bool        `json:"cached"`
	// Error is set when the request failed before producing a solution.
	Error string `json:"error,omitempty"`
} // @name PlanRun

// PlanRunQuery filters plan run history.
type PlanRunQuery struct {
	RequestID string
	Status    Status
	Since     *time.Time
	Limit     int
	Skip      int
}
