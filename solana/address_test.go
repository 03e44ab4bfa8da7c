package solana

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"demo wallet", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTg", true},
		{"second demo wallet", "6NpdXrQEpmJgGJ7SZjMKBJWEUyVgvHr8EZXmLJGZds9K", true},
		{"system program, 32 chars", "11111111111111111111111111111111", true},
		{"wrapped SOL mint", "So11111111111111111111111111111111111111112", true},
		{"empty", "", false},
		{"too short", "vines1vzrYbzLMRdu58ou5XTby4q", false},
		{"too long", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTgAA", false},
		{"contains zero", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPT0", false},
		{"contains capital O", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTO", false},
		{"contains capital I", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTI", false},
		{"contains lowercase l", "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTl", false},
		{"contains space", "vines1vzrYbzLMRdu58ou5XTby4q AqVRLmqo36NKPTg", false},
		{"hex address", "0x52908400098527886E0F7030069857D2E4169EE7", false},
		{"decodes to more than 32 bytes", strings.Repeat("z", 44), false},
		{"decodes to fewer than 32 bytes", strings.Repeat("2", 32), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.address))
		})
	}
}

func TestExplorerURLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://solscan.io/account/abc", ExplorerAccountURL("", "abc"))
	assert.Equal(t, "https://explorer.example/account/abc", ExplorerAccountURL("https://explorer.example/", "abc"))
	assert.Equal(t, "https://solscan.io/tx/sig", ExplorerTxURL(DefaultExplorerURL, "sig"))
}

func TestExplorerQR(t *testing.T) {
	t.Parallel()

	png, err := ExplorerQR("", DemoAddresses[0])
	assert.NoError(t, err)
	assert.True(t, len(png) > 8 && string(png[1:4]) == "PNG")

	_, err = ExplorerQR("", "nope")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
