package rclone

import (
	"encoding/json"
)

// CopyURLRequest is the payload of operations/copyurl
type CopyURLRequest struct {
	URL          string `json:"url"`
	Fs           string `json:"fs"`
	Remote       string `json:"remote"`
	AutoFilename bool   `json:"autoFilename,omitempty"`
	NoClobber    bool   `json:"noClobber,omitempty"`
}

// CopyURLResult holds whatever the daemon answered to operations/copyurl
type CopyURLResult struct {
	Raw json.RawMessage
}

func (r *CopyURLResult) String() string {
	if r == nil || len(r.Raw) == 0 {
		return "{}"
	}
	return string(r.Raw)
}

// Stats represents the response from core/stats
type Stats struct {
	Bytes          int64      `json:"bytes"`
	Checks         int64      `json:"checks"`
	Errors         int64      `json:"errors"`
	LastError      string     `json:"lastError,omitempty"`
	ElapsedTime    float64    `json:"elapsedTime"`
	ETA            *int64     `json:"eta"`
	FatalError     bool       `json:"fatalError"`
	RetryError     bool       `json:"retryError"`
	Speed          float64    `json:"speed"`
	TotalBytes     int64      `json:"totalBytes"`
	TotalTransfers int64      `json:"totalTransfers"`
	Transfers      int64      `json:"transfers"`
	Transferring   []Transfer `json:"transferring,omitempty"`
}

// Transfer is one in-progress entry of Stats.Transferring
type Transfer struct {
	Name       string  `json:"name"`
	Group      string  `json:"group"`
	Bytes      int64   `json:"bytes"`
	Size       int64   `json:"size"`
	Speed      float64 `json:"speed"`
	SpeedAvg   float64 `json:"speedAvg"`
	Percentage int     `json:"percentage"`
	ETA        *int64  `json:"eta"`
}
