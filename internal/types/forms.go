package types

// Form payloads accepted by the mutators. The validate tags mirror the
// constraints enforced by the dashboard forms and are re-checked on the server.

type ProfileForm struct {
	Name         string   `json:"name" validate:"min=2"`
	Initials     string   `json:"initials" validate:"min=1,max=3"`
	URL          string   `json:"url" validate:"url"`
	Location     string   `json:"location" validate:"min=2"`
	LocationLink string   `json:"location_link" validate:"url"`
	Description  string   `json:"description" validate:"min=10"`
	Summary      string   `json:"summary" validate:"min=10"`
	Avatar       string   `json:"avatar" validate:"url"`
	Skills       []string `json:"skills" validate:"min=1,dive,required"`
}

type WorkForm struct {
	Company     string   `json:"company" validate:"required"`
	Href        string   `json:"href" validate:"url"`
	Badges      []string `json:"badges" validate:"dive,required"`
	Location    string   `json:"location" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	LogoURL     *string  `json:"logo_url" validate:"omitempty,url"`
	Start       string   `json:"start" validate:"required"`
	End         *string  `json:"end"`
	Description string   `json:"description" validate:"required"`
}

type LinkForm struct {
	Type string `json:"type" validate:"required"`
	Href string `json:"href" validate:"url"`
}

type ProjectForm struct {
	Title        string     `json:"title" validate:"required"`
	Href         string     `json:"href" validate:"url"`
	Dates        string     `json:"dates" validate:"required"`
	Active       bool       `json:"active"`
	Description  string     `json:"description" validate:"required"`
	Technologies []string   `json:"technologies" validate:"dive,required"`
	Links        []LinkForm `json:"links" validate:"dive"`
	Image        *string    `json:"image" validate:"omitempty,url"`
	Video        *string    `json:"video" validate:"omitempty,url"`
}

type SocialForm struct {
	Name   string `json:"name" validate:"required"`
	URL    string `json:"url" validate:"url"`
	Icon   string `json:"icon" validate:"required"`
	Navbar bool   `json:"navbar"`
}

type ContactForm struct {
	Email  string       `json:"email" validate:"email"`
	Social []SocialForm `json:"social" validate:"dive"`
}

type SubdomainForm struct {
	Name string `json:"subdomain" validate:"required,max=63"`
}
