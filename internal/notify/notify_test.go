package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{name: "unconfigured", cfg: config.Config{}, want: false},
		{name: "host only", cfg: config.Config{SMTPHost: "smtp.example.com"}, want: false},
		{
			name: "fully configured",
			cfg: config.Config{
				SMTPHost: "smtp.example.com",
				MailFrom: "harvester@example.com",
				MailTo:   []string{"ops@example.com"},
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cfg).Enabled())
		})
	}
}

func TestSendRunSummarySkipsWhenUnconfigured(t *testing.T) {
	m := New(config.Config{})
	assert.NoError(t, m.SendRunSummary([]db.RunLogEntry{{Operation: "collectMetadata"}}))
}

func TestSummaryBody(t *testing.T) {
	assert.Equal(t, "No operations ran.\n", summaryBody(nil))

	body := summaryBody([]db.RunLogEntry{
		{
			Operation:   "collectMetadata",
			WindowStart: 1782864000, // 01/07/2026 UTC
			WindowEnd:   1783382400, // 07/07/2026 UTC
			Status:      200,
			TotalCount:  42,
			Processed:   42,
		},
	})
	assert.Contains(t, body, "collectMetadata")
	assert.Contains(t, body, "01/07/2026")
	assert.Contains(t, body, "07/07/2026")
	assert.Contains(t, body, "42/42")
	assert.Contains(t, body, "200 (ok)")
}
