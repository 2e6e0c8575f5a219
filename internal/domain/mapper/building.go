// Package mapper turns parsed work orders into the accounting export rows
// consumed by the administration system.
package mapper

import (
	"regexp"
	"strings"
)

var greenParkIIRe = regexp.MustCompile(`(?i)green\s*park\s*(ii|2)`)

// BuildingCode derives the edificio column from the complex name and the
// unit-type identifier. Tower P of Green Park II books against building 4;
// everything else, including all of Green Park I, books against building 1.
func BuildingCode(complexName, identifier string) string {
	if greenParkIIRe.MatchString(complexName) && strings.EqualFold(identifier, "P") {
		return "4"
	}
	return "1"
}
