package store

import (
	"strings"
	"unicode"

	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

// A route encodes the UI-interaction steps used to drive automated checks
// against a service's web interface. Steps are separated by "|", parts of
// a step by ":".
//
// <action>: write, click, obtain, blank
// <tag_name>: html element like input, a, div, etc...
// <tag_attribute>: id, class, name
// <attribute_value>: attribute value as found in the html
// e.g.: write:input:id:login_user
// e.g.: click:input:name:login_button
// e.g.: obtain:div:class:infoContainer
// Ensure that the chosen attributes identify a single element in the page.
const RoutePattern = "action:tag_name:tag_attribute:attribute_value"

const routePatternLen = 4

var (
	routeActions       = map[string]bool{"write": true, "click": true, "obtain": true, "blank": true}
	routeTagAttributes = map[string]bool{"id": true, "class": true, "name": true, "blank": true}
)

// NormalizeRoute validates a candidate route string and returns it with all
// whitespace stripped. The whole string is validated atomically: a single
// malformed step rejects the entire value.
func NormalizeRoute(raw string) (string, error) {
	for _, step := range strings.Split(raw, "|") {
		parts := strings.Split(step, ":")
		if len(parts) != routePatternLen || !routeActions[parts[0]] || !routeTagAttributes[parts[2]] {
			return "", storeerrors.NewValidation("route", "must follow the pattern "+RoutePattern)
		}
	}
	return stripWhitespace(raw), nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
