package activation

import (
	"regexp"
	"strings"
)

// Tier names which fallback pattern located the code
type Tier string

const (
	TierNone       Tier = ""
	TierHeader     Tier = "header"      // primary: nine groups after the exact header
	TierNineGroups Tier = "nine-groups" // nine clean groups anywhere in the text
	TierHeaderRun  Tier = "header-run"  // fallback: digit run after a loose header
	TierLooseRun   Tier = "loose-run"   // fallback: 8-9 groups of 7-8 digits
)

var (
	// "Шаг 2. Когда потребуется, сообщите этот код установки:" as printed in
	// the activation dialog, tolerant of OCR spacing. Correct turns the
	// leading К into 6, so both spellings are accepted; a К-only anchor
	// would never match corrected text.
	headerPattern = regexp.MustCompile(`Шаг\s*2\.\s*[К6]огда\s*потребуется,\s*сообщите\s*этот\s*код\s*установки:`)

	nineGroupsPattern = regexp.MustCompile(`(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})\s(\d{7})`)

	looseHeaderPattern = regexp.MustCompile(`(?is)Шаг\s*2.*?сообщите.*?код\s*установки[:\-]?\s*([\d\s]+)`)

	// \b is ASCII: a Cyrillic letter glued to a digit still counts as a boundary.
	looseRunPattern = regexp.MustCompile(`\b(?:\d{7,8}\s+){7,8}\d{7,8}\b`)
)

// LocateAfterHeader looks for nine 7-digit groups following the dialog's
// "step 2" header, or anywhere in text when the header is not recognized.
func LocateAfterHeader(text string) Result {
	r, _ := locateAfterHeader(text)
	return r
}

func locateAfterHeader(text string) (Result, Tier) {
	window := text
	tier := TierNineGroups
	if loc := headerPattern.FindStringIndex(text); loc != nil {
		window = text[loc[1]:]
		tier = TierHeader
	}

	if code, ok := nineGroups(window); ok {
		return Found(code), tier
	}
	return NotFound(), TierNone
}

// LocateFallback tries progressively looser patterns on text from the
// sparse-layout pass. Runs found by the first two patterns are cleaned.
func LocateFallback(text string) Result {
	r, _ := locateFallback(text)
	return r
}

func locateFallback(text string) (Result, Tier) {
	if m := looseHeaderPattern.FindStringSubmatch(text); m != nil {
		// A header followed only by whitespace yields nothing to clean.
		if code := Clean(strings.TrimSpace(m[1])); code != "" {
			return Found(code), TierHeaderRun
		}
	}

	if run := looseRunPattern.FindString(text); run != "" {
		return Found(Clean(run)), TierLooseRun
	}

	if code, ok := nineGroups(text); ok {
		return Found(code), TierNineGroups
	}

	return NotFound(), TierNone
}

func nineGroups(text string) (string, bool) {
	m := nineGroupsPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.Join(m[1:], " "), true
}
