package feedback

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// newTestLogger returns a UserLogger whose zerolog mirror writes to buf.
func newTestLogger(buf *bytes.Buffer) *UserLogger {
	logger := zerolog.New(buf)
	ctx := logger.WithContext(context.Background())
	return NewUserLogger(ctx)
}

func TestLogImageEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    ImageEvent
		wantLogs []string
	}{
		{
			name: "copied_image",
			event: ImageEvent{
				Outcome: ImageCopied,
				Path:    "/images/1_a.jpg",
			},
			wantLogs: []string{"Copied 1_a.jpg"},
		},
		{
			name: "mismatched_image",
			event: ImageEvent{
				Outcome: ImageMismatched,
				Path:    "/images/99_c.jpg",
			},
			wantLogs: []string{"Mismatched 99_c.jpg"},
		},
		{
			name: "skipped_image_with_description",
			event: ImageEvent{
				Outcome:     ImageSkipped,
				Path:        "/images/notes.txt",
				Description: "ignore pattern",
			},
			wantLogs: []string{"Skipped notes.txt (ignore pattern)"},
		},
		{
			name: "failed_copy_carries_description",
			event: ImageEvent{
				Outcome:     ImageError,
				Path:        "1_a.jpg",
				Description: "copy failed",
			},
			wantLogs: []string{"Error 1_a.jpg (copy failed)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			u := newTestLogger(&buf)

			u.LogImageEvent(tt.event)

			out := buf.String()
			for _, want := range tt.wantLogs {
				assert.Contains(t, out, want, "log mirror should contain %q", want)
			}
		})
	}
}

func TestLogPhaseAndResult(t *testing.T) {
	var buf bytes.Buffer
	u := newTestLogger(&buf)

	u.LogPhase("Matching images")
	assert.Contains(t, buf.String(), "Matching images", "phase message should be mirrored")

	buf.Reset()
	u.LogResult("/tmp/clients_updated.csv")
	assert.Contains(t, buf.String(), "/tmp/clients_updated.csv", "result path should be mirrored")
}
