package dashboard

import (
	"net/http"

	"marketplace_web/internal/ui/view"
)

// DraftCookie carries a failed dialog's input across the redirect back to
// the dashboard. It is read once.
const DraftCookie = "draft"

// Browsers drop cookies over 4096 bytes; longer drafts are not kept.
const maxDraftLen = 3800

// SetDraft stores d for the next dashboard load. It reports false when the
// draft is too large to keep.
func SetDraft(w http.ResponseWriter, d view.Draft) bool {
	v := d.Encode()
	if len(v) > maxDraftLen {
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// takeDraft reads and clears the draft cookie.
func takeDraft(w http.ResponseWriter, r *http.Request) (view.Draft, bool) {
	c, err := r.Cookie(DraftCookie)
	if err != nil {
		return view.Draft{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: DraftCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return view.DecodeDraft(c.Value)
}
