package email

import (
	"strings"
	"testing"

	"eventregistry/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.RegistrationConfirmationEmailData{
		Email:         "john@example.com",
		Name:          "John Doe",
		EventName:     "Conf 2030",
		EventLocation: "HQ",
		StartsAt:      "2030-06-01T10:00:00+05:30",
	}

	subject, html, text, err := r.Render("registration_confirmation", data)
	require.NoError(t, err)
	require.Equal(t, "You're registered for Conf 2030", subject)
	require.True(t, strings.Contains(html, "John Doe"))
	require.True(t, strings.Contains(html, "HQ"))
	// html/template escapes the offset's plus sign in the rendered body.
	require.True(t, strings.Contains(html, "2030-06-01T10:00:00&#43;05:30"))
	require.True(t, strings.Contains(text, "2030-06-01T10:00:00+05:30"))
	require.True(t, strings.Contains(text, "HQ"))
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("no_such_template", nil)
	require.Error(t, err)
}
