// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Kind classifies a remote document identifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindArxiv
	KindDOI
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindArxiv:
		return "arxiv"
	case KindDOI:
		return "doi"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// Endpoints used to resolve identifiers. Tests point them at httptest servers.
var (
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
	doiBase      = "https://doi.org/"
)

var (
	// "2301.07041", "arXiv:2301.07041", "2301.07041v2"
	arxivPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

	// "10.1145/1234567.1234568"
	doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

// Identifier is a parsed reference to a remote PDF.
type Identifier struct {
	Kind  Kind
	Value string
}

// Parse classifies s. It returns false for anything that is not an arXiv
// ID, a DOI, or an http(s) URL, including local file paths.
func Parse(s string) (Identifier, bool) {
	s = strings.TrimSpace(s)
	if m := arxivPattern.FindStringSubmatch(s); m != nil {
		return Identifier{KindArxiv, m[1]}, true
	}
	if doiPattern.MatchString(s) {
		return Identifier{KindDOI, s}, true
	}
	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return Identifier{KindURL, s}, true
	}
	return Identifier{Kind: KindUnknown, Value: s}, false
}

// PDFURL returns where the PDF is downloaded from. DOIs go through the
// doi.org resolver and rely on the client following redirects.
func (id Identifier) PDFURL() string {
	switch id.Kind {
	case KindArxiv:
		return arxivPDFBase + id.Value
	case KindDOI:
		return doiBase + id.Value
	default:
		return id.Value
	}
}

// Slug returns a filesystem-safe file name stem.
func (id Identifier) Slug() string {
	switch id.Kind {
	case KindArxiv:
		return id.Value
	case KindDOI:
		return strings.NewReplacer("/", "-", ":", "-").Replace(id.Value)
	}
	if u, err := url.Parse(id.Value); err == nil {
		base := path.Base(u.Path)
		base = strings.TrimSuffix(base, path.Ext(base))
		if base != "" && base != "." && base != "/" {
			return base
		}
	}
	h := sha256.Sum256([]byte(id.Value))
	return fmt.Sprintf("url-%x", h[:8])
}
