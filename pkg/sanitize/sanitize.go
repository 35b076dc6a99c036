// Package sanitize turns an Html value — possibly-unsafe rendered
// content plus trusted theme CSS — into a single safe, self-contained
// HTML string, via an allow-list cleaner sized for exactly what
// pkg/highlight and pkg/mathrender emit.
package sanitize

import (
	"net/url"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// imgSrcPattern captures an <img ... src="..."> attribute's value so it
// can be rewritten in place before the content reaches bluemonday.
var imgSrcPattern = regexp.MustCompile(`(<img[^>]*\ssrc=")([^"]*)(")`)

// ImageURLPolicyKind selects how <img src=...> values are rewritten.
type ImageURLPolicyKind int

const (
	// PolicyNone leaves image URLs untouched.
	PolicyNone ImageURLPolicyKind = iota
	// PolicyRelativePrefix prepends a literal prefix to non-fragment URLs.
	PolicyRelativePrefix
	// PolicyLocalAsset rewrites non-fragment URLs into a platform-specific
	// asset:// / http://asset.localhost/ reference rooted at a prefix
	// directory.
	PolicyLocalAsset
)

// ImageURLPolicy is the rewrite rule applied to every <img src> during
// sanitization.
type ImageURLPolicy struct {
	Kind   ImageURLPolicyKind
	Prefix string
}

// Html is the value HtmlSanitizer consumes: possibly-unsafe rendered
// content, trusted theme CSS, and the image rewrite policy to apply.
type Html struct {
	Content  string
	ThemeCSS string
	Policy   ImageURLPolicy
}

// Sanitizer applies the core's fixed allow-list policy and the
// document's image-rewrite policy, producing a self-contained safe
// string.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer with the §4.7 allow-list: bluemonday's UGC
// policy base, extended with the svg/g/use/path/defs/symbol tag set and
// the exact attribute extensions inline-math SVGs and highlighted code
// need.
func New() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").OnElements("code", "span", "p", "a")
	p.AllowAttrs("src").OnElements("img")

	p.AllowElements("figure", "figcaption")

	p.AllowElements("svg", "g", "use", "path", "defs", "symbol")
	p.AllowAttrs("xmlns", "xmlns:xlink", "id", "class", "style", "width", "height", "viewBox").OnElements("svg")
	p.AllowAttrs("class", "transform").OnElements("g")
	p.AllowAttrs("xlink:href", "xmlns:xlink", "href", "class", "transform", "x", "y").OnElements("use")
	p.AllowAttrs("d", "class", "stroke-width").OnElements("path")
	p.AllowAttrs("id").OnElements("defs")
	p.AllowAttrs("id", "overflow").OnElements("symbol")

	p.AllowURLSchemeWithCustomPolicy("asset", func(u *url.URL) bool { return true })

	return &Sanitizer{policy: p}
}

// Sanitize rewrites image URLs per in.Policy, runs the allow-list
// cleaner over in.Content, and prepends the theme CSS to produce the
// final safe document: "<style>"+theme-css+"</style>\n"+sanitized.
func (s *Sanitizer) Sanitize(in Html) string {
	content := rewriteImageURLs(in.Content, in.Policy)
	safe := s.policy.Sanitize(content)
	return "<style>" + in.ThemeCSS + "</style>\n" + safe
}

// rewriteImageURLs runs the configured image-URL policy over every
// <img src="..."> occurrence. bluemonday has no URL-transform hook, so
// this is a pre-pass over the raw HTML string before sanitization.
func rewriteImageURLs(content string, policy ImageURLPolicy) string {
	if policy.Kind == PolicyNone {
		return content
	}
	return imgSrcPattern.ReplaceAllStringFunc(content, func(match string) string {
		sub := imgSrcPattern.FindStringSubmatch(match)
		original := sub[2]
		return sub[1] + rewriteOne(original, policy) + sub[3]
	})
}

func rewriteOne(src string, policy ImageURLPolicy) string {
	if strings.HasPrefix(src, "#") {
		return src
	}
	switch policy.Kind {
	case PolicyRelativePrefix:
		return policy.Prefix + src
	case PolicyLocalAsset:
		abs := path.Join(policy.Prefix, src)
		return assetPrefix() + url.PathEscape(abs)
	default:
		return src
	}
}

// assetPrefix returns the platform-specific scheme+host prefix for
// local-asset rewriting.
func assetPrefix() string {
	switch runtime.GOOS {
	case "windows", "android":
		return "http://asset.localhost/"
	default:
		return "asset://localhost/"
	}
}
