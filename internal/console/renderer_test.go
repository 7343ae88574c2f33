package console

import (
	"bytes"
	"strings"
	"testing"

	"rcfetch/internal/progress"
	"rcfetch/internal/rclone"

	"github.com/stretchr/testify/assert"
)

func TestRender_Transfer(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	eta := int64(125)
	r.Render(progress.Event{
		Stats: &rclone.Stats{
			Speed: 2048,
			Transferring: []rclone.Transfer{
				{Name: "movie.mkv", Bytes: 50, Size: 200, Speed: 1536, ETA: &eta},
			},
		},
	})

	expected := strings.Join([]string{
		strings.Repeat("=", 50),
		"DOWNLOADING...",
		"Transfer 1:",
		"  File: movie.mkv",
		"  Progress: 25.0% (50 Bytes/200 Bytes)",
		"  Speed: 1.5 KB/s",
		"  ETA: 2m5s",
		"Overall Speed: 2 KB/s",
		strings.Repeat("=", 50),
	}, "\n") + "\n"

	assert.Equal(t, expected, buf.String())
}

func TestRender_ZeroSizeAndNoETA(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	zero := int64(0)
	r.Render(progress.Event{
		Stats: &rclone.Stats{
			Transferring: []rclone.Transfer{
				{Name: "a.bin", Bytes: 10, Size: 0},
				{Name: "b.bin", Bytes: 1024, Size: 2048, ETA: &zero},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Transfer 1:\n  File: a.bin\n  Progress: 0.0% (10 Bytes/0 Bytes)\n  Speed: 0 Bytes/s\n")
	assert.Contains(t, out, "Transfer 2:\n  File: b.bin\n  Progress: 50.0% (1 KB/2 KB)\n")
	assert.NotContains(t, out, "ETA:")
	assert.NotContains(t, out, "Overall Speed")
}

func TestRender_Preparing(t *testing.T) {
	tests := []struct {
		name  string
		stats *rclone.Stats
	}{
		{"no stats", nil},
		{"no transfers", &rclone.Stats{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewRenderer(&buf, false).Render(progress.Event{Stats: tt.stats})
			assert.Contains(t, buf.String(), "Preparing download...")
		})
	}
}

func TestRender_IgnoresTerminalEvents(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	r.Render(progress.Event{Finished: true, Success: true, Stats: &rclone.Stats{}})
	r.Render(progress.Event{Finished: true, Error: "boom"})

	assert.Empty(t, buf.String())
}

func TestRender_ClearScreen(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	r.Render(progress.Event{Stats: &rclone.Stats{}})
	r.Render(progress.Event{Stats: &rclone.Stats{}})

	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))
	assert.Equal(t, 2, strings.Count(buf.String(), clearScreen))
}
