package htmltree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Pre-compiled regex patterns for number lookup
var (
	numberPattern           = regexp.MustCompile(`[0-9]+`)
	numberWithSpacesPattern = regexp.MustCompile(`[0-9][\s\p{Zs}0-9]*`)
)

// FindNumber returns the first run of ASCII digits in text. With
// ignoreSpaces, digit groups separated only by whitespace are joined, so
// "item #100 2" yields "1002".
func FindNumber(text string, ignoreSpaces bool) (string, error) {
	if !ignoreSpaces {
		if match := numberPattern.FindString(text); match != "" {
			return match, nil
		}
		return "", NewNotFoundError(fmt.Sprintf("no number in %q", TruncateText(text, 64)))
	}

	match := numberWithSpacesPattern.FindString(text)
	if match == "" {
		return "", NewNotFoundError(fmt.Sprintf("no number in %q", TruncateText(text, 64)))
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, match), nil
}

// FindNodeNumber finds the first number in the text of node and converts it to int.
func FindNodeNumber(node *html.Node, ignoreSpaces bool) (int, error) {
	digits, err := FindNodeNumberString(node, ignoreSpaces)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, NewValidationError(fmt.Sprintf("number %s does not fit in int", digits), err)
	}
	return value, nil
}

// FindNodeNumberString is FindNodeNumber without the integer conversion.
func FindNodeNumberString(node *html.Node, ignoreSpaces bool) (string, error) {
	return FindNumber(GetNodeText(node, false), ignoreSpaces)
}
