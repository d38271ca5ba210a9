package calendar

import "strings"

// Country is an entry of the country selector.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Countries lists the selectable countries in display order.
var Countries = []Country{
	{Code: "FR", Name: "France"},
	{Code: "US", Name: "United States"},
	{Code: "GB", Name: "United Kingdom"},
}

// CountryName returns the display name for code, or code itself when it is
// not selectable.
func CountryName(code string) string {
	if c, ok := lookupCountry(code); ok {
		return c.Name
	}
	return code
}

// Supported reports whether code is one of Countries.
func Supported(code string) bool {
	_, ok := lookupCountry(code)
	return ok
}

func lookupCountry(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}
