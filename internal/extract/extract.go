package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// UnknownName is returned when no recognized domain pattern matches
// the input URL.
const UnknownName = "Unknown"

// Patterns holds the heuristic regexes used by the text extractors.
// They are passed explicitly rather than read from package state so a
// caller can swap them (for example per locale) without hidden
// coupling.
type Patterns struct {
	// Domain captures the registrable label of a URL for a fixed set
	// of recognized TLDs. Heuristic only; a valid site on another TLD
	// yields UnknownName.
	Domain *regexp.Regexp
	// Address matches US street-address-like strings. International
	// formats are a documented limitation, not a defect.
	Address *regexp.Regexp
	Email   *regexp.Regexp
	Phone   *regexp.Regexp
}

// DefaultPatterns returns the stock heuristic patterns.
func DefaultPatterns() Patterns {
	return Patterns{
		Domain:  regexp.MustCompile(`(?:www\.)?([a-zA-Z0-9-]+)\.(?:com|co|org|net|io|edu)`),
		Address: regexp.MustCompile(`\d+\s+[A-Za-z\s,]+\s+[A-Za-z]+\s+\d{5}`),
		Email:   regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		Phone:   regexp.MustCompile(`(?:\+?\d{1,2}\s?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
}

// NameFromURL derives a company name from the domain portion of the
// input URL, or UnknownName when no recognized pattern matches.
func NameFromURL(pats Patterns, rawURL string) string {
	m := pats.Domain.FindStringSubmatch(rawURL)
	if m == nil {
		return UnknownName
	}
	return m[1]
}

// MetaContent returns the content attribute of the first meta tag
// whose name or property attribute equals name, or "".
func MetaContent(page Page, name string) string {
	selector := fmt.Sprintf(`meta[name=%q], meta[property=%q]`, name, name)
	if content, ok := page.FirstAttr(selector, "content"); ok {
		return content
	}
	return ""
}

// Logo returns the resolved href of the first icon link, or "".
func Logo(page Page) string {
	if href, ok := page.FirstAttr(`link[rel*="icon"]`, "href"); ok {
		return page.Resolve(href)
	}
	return ""
}

// SocialLink returns the resolved href of the first anchor whose href
// contains the given platform domain substring, or "". Platforms are
// independent: a page may yield all of them or none.
func SocialLink(page Page, platformDomain string) string {
	selector := fmt.Sprintf(`a[href*=%q]`, platformDomain)
	if href, ok := page.FirstAttr(selector, "href"); ok {
		return page.Resolve(href)
	}
	return ""
}

// Address returns the first US-style street address in the visible
// text, or "".
func Address(pats Patterns, page Page) string {
	return strings.TrimSpace(pats.Address.FindString(page.VisibleText()))
}

// Email returns the first email-like substring in the visible text,
// or "".
func Email(pats Patterns, page Page) string {
	return pats.Email.FindString(page.VisibleText())
}

// PhoneNumbers returns every phone-like substring in the visible text,
// deduplicated by normalized form. The raw matched substrings are
// preserved as the values; region is only used to normalize candidates
// for the dedup key.
func PhoneNumbers(pats Patterns, page Page, region string) []string {
	matches := pats.Phone.FindAllString(page.VisibleText(), -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, raw := range matches {
		raw = strings.TrimSpace(raw)
		key := normalizePhone(raw, region)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, raw)
	}
	return out
}

// normalizePhone produces a dedup key for a raw phone match: E.164
// when libphonenumber can parse and validate it, otherwise the bare
// digit string.
func normalizePhone(raw, region string) string {
	if num, err := phonenumbers.Parse(raw, region); err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.E164)
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
