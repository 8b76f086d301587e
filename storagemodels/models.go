/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/widgetfilter/errors"
)

// ListingMode selects how a listing fetches its entities.
type ListingMode string

const (
	// ModeDirect lists every entity of the listing's business entity type.
	ModeDirect ListingMode = "direct"
	// ModeQuery narrows the listing with its configured sub-query.
	ModeQuery ListingMode = "query"
)

// Widget kinds.
const (
	KindListing = "listing"
	KindFilter  = "filter"
)

// Widget is a persisted page widget. Filter widgets carry the configuration of
// the listing they filter.
type Widget struct {
	ID      string   `json:"id" yaml:"id"`
	Kind    string   `json:"kind" yaml:"kind"`
	Name    string   `json:"name,omitempty" yaml:"name"`
	Listing *Listing `json:"listing,omitempty" yaml:"listing"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty" yaml:"-"`

	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"updatedAt,omitempty" yaml:"-"`
}

// Timestamped is implemented by entities that record when they were stored.
type Timestamped interface {
	Touch(now time.Time)
}

// Touch sets UpdatedAt to now, and CreatedAt when it is not set yet.
func (w *Widget) Touch(now time.Time) {
	ts := strfmt.DateTime(now.UTC())
	if w.CreatedAt == nil {
		created := ts
		w.CreatedAt = &created
	}
	w.UpdatedAt = &ts
}

// Listing describes how a listing widget fetches a set of entities.
type Listing struct {
	ID string `json:"id,omitempty" yaml:"id"`

	// Mode is "direct" or "query". Empty means direct.
	Mode ListingMode `json:"mode" yaml:"mode"`

	// BusinessEntity is the entity type the listing enumerates.
	BusinessEntity string `json:"businessEntity" yaml:"businessEntity"`

	// Query is a SQL fragment appended to the listing sub-select, e.g.
	// "WHERE item.published = 1". The sub-select aliases the entity as "item".
	Query string `json:"query,omitempty" yaml:"query"`

	// OrderBy is a JSON array: [{"by":"price","order":"DESC"}].
	OrderBy string `json:"orderBy,omitempty" yaml:"orderBy"`

	// MaxResults limits the listing; zero means unlimited.
	MaxResults uint64 `json:"maxResults,omitempty" yaml:"maxResults"`
}

// EffectiveMode returns the listing mode with the empty default resolved.
func (l *Listing) EffectiveMode() ListingMode {
	if l.Mode == "" {
		return ModeDirect
	}
	return l.Mode
}

// ValidateMode reports modes outside of direct and query. Such listings are
// listed like direct ones.
func (l *Listing) ValidateMode() error {
	switch l.EffectiveMode() {
	case ModeDirect, ModeQuery:
		return nil
	default:
		return errors.NewUnknownModeError(string(l.Mode))
	}
}

// OrderBy is one entry of a listing's ordering.
type OrderBy struct {
	By    string `json:"by"`
	Order string `json:"order"`
}

// ParseOrderBy decodes a listing's OrderBy JSON. Order defaults to ASC.
func ParseOrderBy(raw string) ([]OrderBy, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []OrderBy
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, errors.NewValidationError("orderBy", err.Error())
	}
	for i := range entries {
		entries[i].Order = strings.ToUpper(strings.TrimSpace(entries[i].Order))
		switch entries[i].Order {
		case "":
			entries[i].Order = "ASC"
		case "ASC", "DESC":
		default:
			return nil, errors.NewValidationError("orderBy", "invalid order "+entries[i].Order)
		}
	}
	return entries, nil
}

// QueryParams defines parameters for a widget-store query.
type QueryParams struct {
	// TableName is ignored by the DynamoDB store, which always uses its own table.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	ScanIndexForward *bool
}
