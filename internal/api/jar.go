package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// fileJar is a cookie jar that writes the cookies of one origin through to
// a JSON file, so the session credential survives process restarts the way
// a browser's cookie store does. Cookies for other origins pass through to
// the in-memory jar only.
//
// Persisted cookies are tracked from the SetCookies arguments rather than
// read back out of the inner jar: cookiejar.Jar.Cookies only populates Name
// and Value, which would lose Path and Expires.
type fileJar struct {
	mu     sync.Mutex
	inner  http.CookieJar
	base   *url.URL
	path   string
	stored map[string]storedCookie
}

// storedCookie is the persisted form of a cookie. Only the fields needed to
// resend the cookie are kept.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

func newFileJar(base *url.URL, path string) (*fileJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	j := &fileJar{
		inner:  inner,
		base:   base,
		path:   path,
		stored: make(map[string]storedCookie),
	}
	j.load()
	return j, nil
}

func (j *fileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	if u.Host != j.base.Host {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	for _, c := range cookies {
		// MaxAge<0 and past Expires are the server's two ways of deleting
		// a cookie.
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(j.stored, c.Name)
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.stored[c.Name] = storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: expires,
		}
	}
	j.save()
}

func (j *fileJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// load restores previously saved cookies. Failures are swallowed: a
// missing or corrupt cookie file just means the next guarded operation
// revalidates against the server.
func (j *fileJar) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		j.stored[sc.Name] = sc
		cookies = append(cookies, &http.Cookie{
			Name:    sc.Name,
			Value:   sc.Value,
			Path:    sc.Path,
			Expires: sc.Expires,
		})
	}
	if len(cookies) > 0 {
		j.inner.SetCookies(j.base, cookies)
	}
}

// save persists the tracked cookies for the API origin. Caller holds j.mu.
func (j *fileJar) save() {
	if len(j.stored) == 0 {
		os.Remove(j.path)
		return
	}

	stored := make([]storedCookie, 0, len(j.stored))
	for _, sc := range j.stored {
		stored = append(stored, sc)
	}
	sort.Slice(stored, func(a, b int) bool { return stored[a].Name < stored[b].Name })

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return
	}
	_ = os.WriteFile(j.path, data, 0600)
}

// clear drops all cookies for the API origin and removes the file.
func (j *fileJar) clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	inner, err := cookiejar.New(nil)
	if err == nil {
		j.inner = inner
	}
	j.stored = make(map[string]storedCookie)
	os.Remove(j.path)
}
