package render

import (
	"net/http"
	"strings"
)

type Presentation int

const (
	PresentationHTML Presentation = iota
	PresentationTable
)

func (p Presentation) String() string {
	switch p {
	case PresentationTable:
		return "table"
	default:
		return "html"
	}
}

// Negotiator picks how the root page is presented for a request.
type Negotiator interface {
	Negotiate(h http.Header) Presentation
}

type NegotiatorFunc func(h http.Header) Presentation

func (f NegotiatorFunc) Negotiate(h http.Header) Presentation { return f(h) }

// UserAgentNegotiator serves the table when User-Agent contains Token
// (case-sensitive). A missing header or empty token means HTML.
type UserAgentNegotiator struct {
	Token string
}

func (n UserAgentNegotiator) Negotiate(h http.Header) Presentation {
	if n.Token == "" {
		return PresentationHTML
	}
	if strings.Contains(h.Get("User-Agent"), n.Token) {
		return PresentationTable
	}
	return PresentationHTML
}
