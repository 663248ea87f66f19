package render

import (
	"html/template"
	"strings"
)

type IconKey string

const (
	IconGlobe    IconKey = "globe"
	IconGitHub   IconKey = "github"
	IconLinkedIn IconKey = "linkedin"
	IconX        IconKey = "x"
	IconYouTube  IconKey = "youtube"
	IconEmail    IconKey = "email"
	IconWebsite  IconKey = "website"
	IconSource   IconKey = "source"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

func svg(body string) func() template.HTML {
	markup := template.HTML(svgOpen + body + `</svg>`)
	return func() template.HTML { return markup }
}

var icons = map[IconKey]func() template.HTML{
	IconGlobe:    svg(`<circle cx="12" cy="12" r="10"/><path d="M2 12h20"/><path d="M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"/>`),
	IconGitHub:   svg(`<path d="M9 19c-5 1.5-5-2.5-7-3m14 6v-3.87a3.37 3.37 0 0 0-.94-2.61c3.14-.35 6.44-1.54 6.44-7A5.44 5.44 0 0 0 20 4.77 5.07 5.07 0 0 0 19.91 1S18.73.65 16 2.48a13.38 13.38 0 0 0-7 0C6.27.65 5.09 1 5.09 1A5.07 5.07 0 0 0 5 4.77a5.44 5.44 0 0 0-1.5 3.78c0 5.42 3.3 6.61 6.44 7A3.37 3.37 0 0 0 9 18.13V22"/>`),
	IconLinkedIn: svg(`<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-4 0v7h-4v-7a6 6 0 0 1 6-6z"/><rect x="2" y="9" width="4" height="12"/><circle cx="4" cy="4" r="2"/>`),
	IconX:        svg(`<path d="M4 4l16 16"/><path d="M20 4L4 20"/>`),
	IconYouTube:  svg(`<path d="M22.54 6.42a2.78 2.78 0 0 0-1.94-2C18.88 4 12 4 12 4s-6.88 0-8.6.46a2.78 2.78 0 0 0-1.94 2A29 29 0 0 0 1 11.75a29 29 0 0 0 .46 5.33A2.78 2.78 0 0 0 3.4 19c1.72.46 8.6.46 8.6.46s6.88 0 8.6-.46a2.78 2.78 0 0 0 1.94-2 29 29 0 0 0 .46-5.25 29 29 0 0 0-.46-5.33z"/><polygon points="9.75 15.02 15.5 11.75 9.75 8.48 9.75 15.02"/>`),
	IconEmail:    svg(`<path d="M4 4h16c1.1 0 2 .9 2 2v12c0 1.1-.9 2-2 2H4c-1.1 0-2-.9-2-2V6c0-1.1.9-2 2-2z"/><polyline points="22,6 12,13 2,6"/>`),
	IconWebsite:  svg(`<path d="M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.71"/><path d="M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.71-1.71"/>`),
	IconSource:   svg(`<polyline points="16 18 22 12 16 6"/><polyline points="8 6 2 12 8 18"/>`),
}

// ResolveIcon maps a free-form icon name or link type onto the closed key
// set. Unknown names resolve to the globe.
func ResolveIcon(name string) IconKey {
	key := IconKey(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := icons[key]; ok {
		return key
	}
	return IconGlobe
}

// Icon returns the inline SVG for key, falling back to the globe.
func Icon(key IconKey) template.HTML {
	if draw, ok := icons[key]; ok {
		return draw()
	}
	return icons[IconGlobe]()
}

// IconKeys lists the selectable icons in a stable order for forms.
func IconKeys() []IconKey {
	return []IconKey{IconGlobe, IconGitHub, IconLinkedIn, IconX, IconYouTube, IconEmail, IconWebsite, IconSource}
}
