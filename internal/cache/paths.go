package cache

import "fmt"

// Paths for every page that displays a subdomain's data.

func SitePath(name string) string {
	return "/s/" + name
}

func DashboardPath(subdomainID, section string) string {
	return fmt.Sprintf("/dashboard/%s/%s", subdomainID, section)
}

func DashboardDetailPath(subdomainID, section, id string) string {
	return fmt.Sprintf("/dashboard/%s/%s/%s", subdomainID, section, id)
}
