package templates_test

import (
	"testing"

	"storefront/pkg/mailer/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordReset(t *testing.T) {
	data := map[string]any{
		"name":      "Jane",
		"site_name": "Shop",
		"url":       "http://localhost:3000/#/password-reset/MQ/abc",
	}

	subject, text, html, err := templates.Render(templates.PasswordReset, data)
	require.NoError(t, err)

	assert.Equal(t, "Password reset on Shop", subject)
	assert.Contains(t, text, "Hello Jane,")
	assert.Contains(t, text, "http://localhost:3000/#/password-reset/MQ/abc")
	assert.Contains(t, html, `href="http://localhost:3000/#/password-reset/MQ/abc"`)
}

func TestRenderFallbacks(t *testing.T) {
	subject, text, _, err := templates.Render(templates.PasswordReset, map[string]any{"url": "x"})
	require.NoError(t, err)
	assert.Equal(t, "Password reset on Storefront", subject)
	assert.Contains(t, text, "Hello there,")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := templates.Render("missing", nil)
	assert.Error(t, err)
}
