package view

import (
	"encoding/base64"
	"net/url"
	"slices"
)

const draftModalKey = "_modal"

// Draft is what the user typed into one dialog before a submit that failed.
// It travels beside the URL, never in it.
type Draft struct {
	Modal  Modal
	Values url.Values
}

func (d Draft) Encode() string {
	q := url.Values{}
	for k, vs := range d.Values {
		q[k] = vs
	}
	q.Set(draftModalKey, d.Modal.String())
	return base64.RawURLEncoding.EncodeToString([]byte(q.Encode()))
}

func DecodeDraft(s string) (Draft, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Draft{}, false
	}
	q, err := url.ParseQuery(string(raw))
	if err != nil {
		return Draft{}, false
	}
	m, ok := ParseModal(q.Get(draftModalKey))
	if !ok {
		return Draft{}, false
	}
	q.Del(draftModalKey)
	return Draft{Modal: m, Values: q}, true
}

// WithDraft attaches d; it is shown only while its dialog is open.
func (s State) WithDraft(d Draft) State {
	if slices.Contains(s.Modals, d.Modal) {
		s.Draft = &d
	}
	return s
}

// DraftFor returns the values typed into m, or nil.
func (s State) DraftFor(m Modal) url.Values {
	if s.Draft == nil || s.Draft.Modal != m {
		return nil
	}
	return s.Draft.Values
}
