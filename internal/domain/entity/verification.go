package entity

import "time"

type RegionReport struct {
	Selector string
	// TextLength counts characters of the visible text, not bytes.
	TextLength int
	Populated  bool
}

type VerificationResult struct {
	URL            string
	Element        MatchedElement
	ScreenshotPath string
	Width          int
	Height         int
	BytesWritten   int64
	Waited         time.Duration
	Duration       time.Duration
	Region         *RegionReport
}
