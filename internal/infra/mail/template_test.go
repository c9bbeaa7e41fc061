package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutreachHTML(t *testing.T) {
	html, err := BuildOutreachHTML("Acme Plumbing", "Springfield", "https://leadreach.example.com", "owner@acme.com")
	require.NoError(t, err)

	assert.Contains(t, html, "Hello Acme Plumbing,")
	assert.Contains(t, html, "based near Springfield")
	assert.Contains(t, html, "book a 15-min consult: https://leadreach.example.com")
	assert.Contains(t, html, `<img src="https://leadreach.example.com/api/track?email=owner%40acme.com"`)
}

func TestPixelURLEscapesRecipient(t *testing.T) {
	url := PixelURL("https://leadreach.example.com", "first+tag@acme.com")
	assert.Equal(t, "https://leadreach.example.com/api/track?email=first%2Btag%40acme.com", url)
}
