// Package service provides stateless asset URL transforms for the proxy
// boundary.
package service

import (
	"net/url"
	"regexp"
	"strings"
)

// URLRewriter rewrites secure asset host URLs so they point back at this
// proxy. Pure string transforms, no state and no network.
type URLRewriter interface {
	// RewriteURL rewrites a single asset URL. Returns the input unchanged and
	// false when the URL does not target the secure asset host.
	RewriteURL(raw string) (string, bool)

	// RewriteDocument rewrites every secure asset URL embedded in a document,
	// such as a content API JSON response.
	RewriteDocument(doc []byte) []byte
}

type urlRewriter struct {
	secureHost string
	proxyBase  string
	pattern    *regexp.Regexp
}

// NewURLRewriter creates a rewriter that maps URLs of the form
// https://{subdomain}.{secureHost}/... to {proxyBase}/a/{subdomain}/... .
// proxyBase must not carry a trailing slash.
func NewURLRewriter(secureHost, proxyBase string) URLRewriter {
	pattern := regexp.MustCompile(`https://([a-z0-9-]+)\.` + regexp.QuoteMeta(secureHost))

	return &urlRewriter{
		secureHost: secureHost,
		proxyBase:  strings.TrimRight(proxyBase, "/"),
		pattern:    pattern,
	}
}

// RewriteURL maps one secure asset URL onto the proxy, keeping path and query.
func (r *urlRewriter) RewriteURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "https" {
		return raw, false
	}

	subdomain, found := strings.CutSuffix(parsed.Host, "."+r.secureHost)
	if !found || subdomain == "" || strings.Contains(subdomain, ".") {
		return raw, false
	}

	return r.proxyBase + "/a/" + subdomain + parsed.RequestURI(), true
}

// RewriteDocument replaces every secure asset origin in the document with the
// proxy's equivalent route prefix.
func (r *urlRewriter) RewriteDocument(doc []byte) []byte {
	return r.pattern.ReplaceAll(doc, []byte(r.proxyBase+"/a/$1"))
}
