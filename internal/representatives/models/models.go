// Package models defines the shared representative roster shapes produced by
// source adapters and consumed by the aggregator, cache, and transport.
package models

import (
	"strconv"
	"time"

	"civiscope/internal/coverage"
	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	"civiscope/internal/location"
)

// ContactInfo carries the public contact channels for a representative.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Office  string `json:"office,omitempty"`
}

// IsEmpty reports whether this is a placeholder record with no usable channel.
func (c ContactInfo) IsEmpty() bool {
	return c.Phone == "" && c.Email == "" && c.Website == "" && c.Office == ""
}

// Chamber is the granularity of the office a representative holds.
type Chamber string

const (
	ChamberFederal   Chamber = "federal"
	ChamberState     Chamber = "state"
	ChamberCounty    Chamber = "county"
	ChamberMunicipal Chamber = "municipal"
)

// Representative is one normalized roster entry. SourceTier records which
// adapter produced it, required for auditability and per-tier cache
// invalidation.
type Representative struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Chamber      Chamber      `json:"chamber"`
	Party        string       `json:"party,omitempty"`
	Jurisdiction string       `json:"jurisdiction"`
	Contact      ContactInfo  `json:"contact"`
	SourceTier   domain.Level `json:"source_tier"`

	// Enrichments, populated only when the matching option flag is set.
	Committees     []string `json:"committees,omitempty"`
	VotesCast      int      `json:"votes_cast,omitempty"`
	BillsSponsored int      `json:"bills_sponsored,omitempty"`
}

// Breakdown counts merged representatives per tier.
type Breakdown struct {
	Federal int `json:"federal"`
	State   int `json:"state"`
	Local   int `json:"local"`
}

// Sum is the tier total; always equal to AggregationResult.Total.
func (b Breakdown) Sum() int {
	return b.Federal + b.State + b.Local
}

// AggregationResult is the merged roster for one (zip, options) aggregation.
type AggregationResult struct {
	Representatives []Representative `json:"representatives"`
	Breakdown       Breakdown        `json:"breakdown"`
	Total           int              `json:"total"`
	Partial         bool             `json:"partial"`
	FailedTiers     []domain.Level   `json:"failed_tiers,omitempty"`
}

// Resolution is the engine's complete answer for one (zip, options) request.
// Resolutions are rebuilt from source on every cache miss, never patched.
type Resolution struct {
	ZipCode      string                        `json:"zip_code"`
	Jurisdiction *jurisdiction.DetectionResult `json:"jurisdiction"`
	Coverage     coverage.Level                `json:"coverage"`
	Aggregation  AggregationResult             `json:"aggregation"`
	AreaInfo     *location.Data                `json:"area_info,omitempty"`
	ComputedAt   time.Time                     `json:"computed_at"`
}

// ByTier returns the representatives produced by the given source tier,
// preserving merge order.
func (r *Resolution) ByTier(tier domain.Level) []Representative {
	var out []Representative
	for _, rep := range r.Aggregation.Representatives {
		if rep.SourceTier == tier {
			out = append(out, rep)
		}
	}
	return out
}

// Options is the closed, typed option set for a resolution. Flags change
// which enrichments adapters fetch, so cache keys include the signature.
type Options struct {
	IncludeVotingRecords bool `json:"include_voting_records"`
	IncludeBillData      bool `json:"include_bill_data"`
	IncludeCommitteeInfo bool `json:"include_committee_info"`
}

// Signature is a stable string encoding of the option flags, used as the
// options component of cache keys.
func (o Options) Signature() string {
	return "vr=" + strconv.FormatBool(o.IncludeVotingRecords) +
		",bd=" + strconv.FormatBool(o.IncludeBillData) +
		",ci=" + strconv.FormatBool(o.IncludeCommitteeInfo)
}
