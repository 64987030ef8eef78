package skill

import (
	"regexp"
	"strings"
)

// seeRefPattern matches <see ref="skill-name"> elements inside a skill
// body's <crossrefs> blocks.
var seeRefPattern = regexp.MustCompile(`<see\s+ref="([a-z0-9-]+)"`)

// ExtractRefs returns the cross-references declared in a skill body.
// Self-references are dropped. Line numbers are 1-based within the scanned
// content.
func ExtractRefs(content, selfName string) []CrossRef {
	var refs []CrossRef

	for _, loc := range seeRefPattern.FindAllStringSubmatchIndex(content, -1) {
		target := content[loc[2]:loc[3]]
		if target == selfName {
			continue
		}
		line := strings.Count(content[:loc[0]], "\n") + 1
		refs = append(refs, CrossRef{Target: target, Line: line})
	}

	return refs
}

// AllRefs extracts cross-references for every skill, keyed by skill name.
// Skills with no references are absent from the map.
func AllRefs(skills []*Skill) map[string][]CrossRef {
	refs := make(map[string][]CrossRef)
	for _, s := range skills {
		if r := ExtractRefs(s.Body, s.Name); len(r) > 0 {
			refs[s.Name] = r
		}
	}
	return refs
}
