package bill

import (
	"sort"
	"strings"
)

// designationVocabulary lists the job titles these bills print. Matching is
// longest-title-first so "Assistant Professor" never resolves as "Professor".
var designationVocabulary = []string{
	"Associate Professor",
	"Assistant Professor",
	"Professor",
	"Office Superintendent",
	"Head Clerk",
	"Senior Clerk",
	"Junior Clerk",
	"Medical Officer",
	"Staff Nurse",
	"Nurse",
	"Matron",
	"Pharmacist",
	"Lab Technician",
	"Lab Assistant",
	"X-Ray Technician",
	"Librarian",
	"Accountant",
	"Cashier",
	"Typist",
	"Stenographer",
	"Driver",
	"Peon",
	"Watchman",
	"Sweeper",
	"Ward Boy",
	"Class 4",
	"Class IV",
	"Class 3",
	"Class III",
}

// sortedDesignations is the vocabulary pre-sorted longest-first at process
// start; the ordering is load-bearing for unambiguous substring matching.
var sortedDesignations = func() []string {
	out := make([]string, len(designationVocabulary))
	copy(out, designationVocabulary)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// matchDesignation finds the first vocabulary title contained in text,
// longest first. It returns the canonical title, the portion of text before
// the match, and whether anything matched.
func matchDesignation(text string) (title, before string, ok bool) {
	lower := strings.ToLower(text)
	for _, d := range sortedDesignations {
		idx := strings.Index(lower, strings.ToLower(d))
		if idx < 0 {
			continue
		}
		return d, strings.TrimSpace(text[:idx]), true
	}
	return "", "", false
}
