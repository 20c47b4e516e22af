package api

import (
	"net/url"
	"strings"
)

// Method is an HTTP verb accepted by the requesters.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
	MethodTrace  Method = "TRACE"
	MethodPatch  Method = "PATCH"
)

// Valid reports whether m is one of the supported verbs (case-insensitive).
func (m Method) Valid() bool {
	switch Method(strings.ToUpper(string(m))) {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead, MethodTrace, MethodPatch:
		return true
	}
	return false
}

// Descriptor is a fully built request before it is handed to a primitive.
type Descriptor struct {
	Method Method
	Path   string
	Query  url.Values
	Body   any
}

// Target returns the path with its percent-encoded query appended. Keys are
// emitted in sorted order so the same query always yields the same string.
func (d Descriptor) Target() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}
