package web

import (
	"net/http"
	"net/url"
)

// Flash is a one-shot message rendered at the top of the next page.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

const flashCookie = "flightlog_flash"

// setFlash stores a flash message in a short-lived cookie.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

// takeFlash reads and clears the pending flash message, if any.
func takeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	decoded, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message := "success", decoded
	for i := 0; i < len(decoded); i++ {
		if decoded[i] == '|' {
			kind, message = decoded[:i], decoded[i+1:]
			break
		}
	}
	return &Flash{Kind: kind, Message: message}
}
