// Package report handles crowdsourced air quality observations.
package report

import (
	"errors"
	"time"
)

// Report errors.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyText      = errors.New("report text must not be empty")
	ErrTextTooLong    = errors.New("report text exceeds the maximum length")
)

// MaxTextLength bounds the free-form observation text.
const MaxTextLength = 500

// Report is one crowdsourced observation tied to a coordinate.
type Report struct {
	ID   string
	Text string

	// Lat, Lon and LocationName describe where the observation was made.
	Lat          float64
	Lon          float64
	LocationName string

	// Classification is the AI-estimated pollution source, or a
	// placeholder when AI is unavailable.
	Classification string

	CreatedAt time.Time
}
