package format

import (
	"regexp"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vezinbastien/devtools/internal/color"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// quotedHex matches a string literal holding only a hex color.
var quotedHex = regexp.MustCompile(`"#[0-9A-Fa-f]{3}(?:[0-9A-Fa-f]{3})?"`)

// Format takes config source and returns it in canonical HCL style with
// hex color literals uppercased, the form the converter itself emits.
//
// The formatter works even on partial/invalid HCL, so an editor can run
// it while the user is still typing.
func Format(content string) (string, error) {
	formatted := string(hclwrite.Format([]byte(content)))
	formatted = multipleBlankLines.ReplaceAllString(formatted, "\n\n")
	formatted = blankLineAfterOpenBrace.ReplaceAllString(formatted, "{\n")
	formatted = blankLineBeforeCloseBrace.ReplaceAllString(formatted, "\n${1}")
	return canonicalHex(formatted), nil
}

func canonicalHex(content string) string {
	return quotedHex.ReplaceAllStringFunc(content, func(lit string) string {
		hex, err := color.ParseHex(lit[1 : len(lit)-1])
		if err != nil {
			return lit
		}
		return `"` + hex + `"`
	})
}
