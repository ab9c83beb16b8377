package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	authorizationHeader = "Authorization"
	basicSchemePrefix   = "Basic "
	credentialSeparator = ":"
)

// Proof is an identity proof extracted from a request. The concrete types
// are [BasicCredentials] and [SessionToken].
type Proof interface {
	proof()
}

// BasicCredentials is an email/password pair taken from a Basic
// "Authorization" header.
type BasicCredentials struct {
	Email    string
	Password string
}

func (BasicCredentials) proof() {}

// SessionToken is a session token taken from a cookie.
type SessionToken string

func (SessionToken) proof() {}

// Extractor pulls one kind of identity proof out of a request.
type Extractor interface {
	// Name identifies the strategy in logs.
	Name() string

	// Extract returns the proof carried by r, or an error describing why
	// none is usable.
	Extract(r *http.Request) (Proof, error)
}

// BasicAuthExtractor reads RFC 7617 Basic credentials from the
// "Authorization" header.
type BasicAuthExtractor struct{}

// Name implements [Extractor].
func (BasicAuthExtractor) Name() string {
	return "basic_auth"
}

// Extract implements [Extractor].
func (BasicAuthExtractor) Extract(r *http.Request) (Proof, error) {
	encoded, err := ExtractBase64AuthorizationHeader(r.Header.Get(authorizationHeader))
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeBase64AuthorizationHeader(encoded)
	if err != nil {
		return nil, err
	}

	creds, err := ExtractUserCredentials(decoded)
	if err != nil {
		return nil, err
	}

	return creds, nil
}

// ExtractBase64AuthorizationHeader strips the "Basic " prefix from an
// "Authorization" header value.
func ExtractBase64AuthorizationHeader(header string) (string, error) {
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	encoded, ok := strings.CutPrefix(header, basicSchemePrefix)
	if !ok {
		return "", ErrUnsupportedScheme
	}

	return encoded, nil
}

// DecodeBase64AuthorizationHeader decodes the base64 part of a Basic header
// into UTF-8 text.
func DecodeBase64AuthorizationHeader(encoded string) (string, error) {
	if encoded == "" {
		return "", ErrMalformedBase64
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || !utf8.Valid(raw) {
		return "", ErrMalformedBase64
	}

	return string(raw), nil
}

// ExtractUserCredentials splits decoded credentials on the first ':' into
// email and password. The password itself may contain ':'.
func ExtractUserCredentials(decoded string) (BasicCredentials, error) {
	email, password, ok := strings.Cut(decoded, credentialSeparator)
	if !ok {
		return BasicCredentials{}, ErrMissingSeparator
	}

	return BasicCredentials{Email: email, Password: password}, nil
}

// SessionCookieExtractor reads a session token from a named cookie.
type SessionCookieExtractor struct {
	CookieName string
}

// Name implements [Extractor].
func (SessionCookieExtractor) Name() string {
	return "session_cookie"
}

// Extract implements [Extractor].
func (e SessionCookieExtractor) Extract(r *http.Request) (Proof, error) {
	token := SessionCookie(r, e.CookieName)
	if token == "" {
		return nil, ErrNoSessionCookie
	}
	return SessionToken(token), nil
}

// SessionCookie returns the value of the cookie named name, or "" when the
// request carries no such cookie.
func SessionCookie(r *http.Request, name string) string {
	if r == nil || name == "" {
		return ""
	}

	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// HasCredentials reports whether r carries any identity proof at all: an
// "Authorization" header or a non-empty session cookie. It does not check
// that the proof is well formed.
func HasCredentials(r *http.Request, cookieName string) bool {
	if r == nil {
		return false
	}
	return r.Header.Get(authorizationHeader) != "" || SessionCookie(r, cookieName) != ""
}
