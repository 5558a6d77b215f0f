package util

import "github.com/fatih/color"

// Terminal styles for the parts of a listing report.
const (
	StyleHeading = "heading"
	StyleAmount  = "amount"
	StyleNotice  = "notice"
	StyleMuted   = "muted"
	StyleTime    = "time"
	StyleError   = "error"
)

var styles = map[string][]color.Attribute{
	StyleHeading: {color.Bold, color.Underline},
	StyleAmount:  {color.FgGreen, color.Bold},
	StyleNotice:  {color.FgYellow},
	StyleMuted:   {color.Faint},
	StyleTime:    {color.FgCyan},
	StyleError:   {color.FgHiRed},
}

// ColorOutput renders text in the given styles. Unknown styles are ignored.
func ColorOutput(text string, names ...string) string {
	attributes := []color.Attribute{}
	for _, name := range names {
		attributes = append(attributes, styles[name]...)
	}
	if len(attributes) == 0 {
		return text
	}
	return color.New(attributes...).Sprint(text)
}
