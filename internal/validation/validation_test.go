package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subfolio-dev/subfolio/internal/types"
)

func validProfile() types.ProfileForm {
	return types.ProfileForm{
		Name:         "Ada Lovelace",
		Initials:     "AL",
		URL:          "https://ada.dev",
		Location:     "London",
		LocationLink: "https://maps.example.com/london",
		Description:  "Analytical engine programmer",
		Summary:      "I write programs for machines that do not exist yet.",
		Avatar:       "https://ada.dev/avatar.png",
		Skills:       []string{"Go"},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe.Map()
}

func TestValidateProfile(t *testing.T) {
	require.NoError(t, Validate(validProfile()))

	p := validProfile()
	p.Name = "A"
	p.Initials = "ABCD"
	p.URL = "not a url"
	p.Skills = nil

	fields := fieldsOf(t, Validate(p))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "initials")
	assert.Contains(t, fields, "url")
	assert.Equal(t, "must contain at least 1 item(s)", fields["skills"])
	assert.NotContains(t, fields, "avatar")
}

func TestValidateWorkOptionalFields(t *testing.T) {
	w := types.WorkForm{
		Company:     "Acme",
		Href:        "https://acme.test",
		Location:    "Remote",
		Title:       "Engineer",
		Start:       "2020",
		Description: "Built things",
	}
	require.NoError(t, Validate(w))

	bad := "nope"
	w.LogoURL = &bad
	fields := fieldsOf(t, Validate(w))
	assert.Equal(t, "must be a valid URL", fields["logo_url"])
}

func TestValidateNestedCollections(t *testing.T) {
	c := types.ContactForm{
		Email: "ada@example.com",
		Social: []types.SocialForm{
			{Name: "GitHub", URL: "https://github.com/ada", Icon: "github"},
			{Name: "", URL: "ftp//broken", Icon: ""},
		},
	}

	fields := fieldsOf(t, Validate(c))
	assert.Contains(t, fields, "social[1].name")
	assert.Contains(t, fields, "social[1].url")
	assert.Contains(t, fields, "social[1].icon")
	assert.NotContains(t, fields, "social[0].name")

	p := types.ProjectForm{
		Title:       "Engine",
		Href:        "https://engine.test",
		Dates:       "1843",
		Description: "Notes",
		Links:       []types.LinkForm{{Type: "", Href: "https://x.test"}},
	}
	fields = fieldsOf(t, Validate(p))
	assert.Contains(t, fields, "links[0].type")
}

func TestValidateContactEmail(t *testing.T) {
	fields := fieldsOf(t, Validate(types.ContactForm{Email: "nope"}))
	assert.Equal(t, "must be a valid email", fields["email"])
}

func TestFieldErrorsMessage(t *testing.T) {
	err := Validate(types.SubdomainForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subdomain: is required")
}
