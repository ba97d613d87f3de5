package model

// PrimaryTagStats is the impression count of one primary tag instance
type PrimaryTagStats struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	InstanceIndex   int    `json:"instanceIndex"`
	DisplayName     string `json:"displayName"`
	ImpressionCount int    `json:"impressionCount"`
}

// MasterTagStats aggregates impressions under one master tag
type MasterTagStats struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	IsClosed              bool              `json:"isClosed"`
	MasterImpressionCount int               `json:"masterImpressionCount"`
	PrimaryTags           []PrimaryTagStats `json:"primaryTags"`
}

// TranscriptBreakdownRow counts impressions per (master, primary) pair within one transcript
type TranscriptBreakdownRow struct {
	MasterTagID     string  `json:"masterTagId"`
	MasterTagName   string  `json:"masterTagName"`
	PrimaryTagID    *string `json:"primaryTagId,omitempty"`
	PrimaryTagName  *string `json:"primaryTagName,omitempty"`
	ImpressionCount int     `json:"impressionCount"`
}

// Analytics is the aggregated view over tag impressions
type Analytics struct {
	MasterTags          []MasterTagStats         `json:"masterTags"`
	TotalMasterTags     int                      `json:"totalMasterTags"`
	TotalPrimaryTags    int                      `json:"totalPrimaryTags"`
	TotalImpressions    int                      `json:"totalImpressions"`
	TranscriptBreakdown []TranscriptBreakdownRow `json:"transcriptBreakdown,omitempty"`
}

// TagCount is a raw (id, count) aggregate row
type TagCount struct {
	ID    string
	Count int
}
