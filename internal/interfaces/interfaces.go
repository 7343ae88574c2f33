package interfaces

import (
	"context"

	"rcfetch/internal/rclone"
)

// RCloneClient provides an interface to interact with RClone daemon
type RCloneClient interface {
	Stats(ctx context.Context) *rclone.Stats
	CopyURL(ctx context.Context, req rclone.CopyURLRequest) (*rclone.CopyURLResult, error)
	Ping(ctx context.Context) error
}
