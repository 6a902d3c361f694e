package services

import (
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListOptions carries pagination and sorting for list queries. Page is
// 1-indexed; Limit is bounded to [1, MaxLimit].
type ListOptions struct {
	Page      int64
	Limit     int64
	SortBy    string
	SortOrder string
}

// Normalized returns a copy with defaults applied and bounds enforced.
func (o ListOptions) Normalized() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 || o.Limit > MaxLimit {
		o.Limit = DefaultLimit
	}
	if o.SortBy == "" {
		o.SortBy = "createdAt"
	}
	if o.SortOrder != "asc" {
		o.SortOrder = "desc"
	}
	return o
}

// Skip converts the 1-indexed page to a document offset.
func (o ListOptions) Skip() int64 {
	return (o.Page - 1) * o.Limit
}

// Sort builds the single-field sort document; the field name is handed to
// the database as-is.
func (o ListOptions) Sort() bson.D {
	direction := -1
	if o.SortOrder == "asc" {
		direction = 1
	}
	return bson.D{{Key: o.SortBy, Value: direction}}
}
