package resolve

import (
	"regexp"
	"strings"
)

var (
	scriptOpenRe  = regexp.MustCompile(`(?is)<script(\s[^>]*)?>`)
	moduleAttrRe  = regexp.MustCompile(`(?i)(?:^|\s)(?:module\b|context\s*=\s*["']?module["']?)`)
	scriptCloseRe = regexp.MustCompile(`(?i)</script\s*>`)
)

// Inject merges shared code into the markup's instance-level script region,
// immediately after the opening tag. Module-context scripts are reserved for
// the block's own exports and never touched. When no instance script exists
// one is synthesized ahead of the markup. Empty shared code is a no-op.
func Inject(markup, shared string) string {
	if strings.TrimSpace(shared) == "" {
		return markup
	}
	if loc := instanceScriptOpen(markup); loc != nil {
		insert := loc[1]
		return markup[:insert] + "\n" + shared + markup[insert:]
	}
	return "<script>\n" + shared + "\n</script>\n" + markup
}

// instanceScriptOpen finds the first <script> opening tag without a
// module-context attribute. Returns the regex match indices or nil.
func instanceScriptOpen(markup string) []int {
	for _, loc := range scriptOpenRe.FindAllStringSubmatchIndex(markup, -1) {
		attrs := ""
		if loc[2] >= 0 {
			attrs = markup[loc[2]:loc[3]]
		}
		if moduleAttrRe.MatchString(attrs) {
			continue
		}
		return loc
	}
	return nil
}

func hasModuleScript(markup string) bool {
	for _, loc := range scriptOpenRe.FindAllStringSubmatchIndex(markup, -1) {
		if loc[2] < 0 {
			continue
		}
		if moduleAttrRe.MatchString(markup[loc[2]:loc[3]]) {
			return true
		}
	}
	return false
}

// DeclaresName reports whether the markup's own instance script already
// declares name, in which case shared definitions must not shadow it.
func DeclaresName(markup, name string) bool {
	loc := instanceScriptOpen(markup)
	if loc == nil {
		return false
	}
	body := markup[loc[1]:]
	if end := scriptCloseRe.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	re := regexp.MustCompile(`\b(?:const|let|var|function|class)\s+` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(body)
}
