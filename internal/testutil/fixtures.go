package testutil

import (
	"rcfetch/internal/rclone"
)

// CreateTestStats creates a stats snapshot with a single in-progress transfer
func CreateTestStats(overrides ...func(*rclone.Stats)) *rclone.Stats {
	eta := int64(6)
	stats := &rclone.Stats{
		Bytes:          50,
		Speed:          25,
		TotalBytes:     200,
		TotalTransfers: 1,
		Transferring: []rclone.Transfer{
			{
				Name:  "movie.mkv",
				Group: "global_stats",
				Bytes: 50,
				Size:  200,
				Speed: 25,
				ETA:   &eta,
			},
		},
	}

	for _, override := range overrides {
		override(stats)
	}

	return stats
}
