package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_CleanHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Acme Bakery</title><style>body{color:red}</style></head>
<body><nav>Menu</nav><h1>Welcome</h1><p>Fresh bread daily. Call (555) 123-4567.</p>
<script>alert('hi')</script><iframe src="ads"></iframe><footer>Copyright 2025</footer></body></html>`))
	}))
	defer srv.Close()

	f := NewPageFetcher()
	text, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "# Acme Bakery\n\n"))
	assert.Contains(t, text, "Welcome")
	assert.Contains(t, text, "(555) 123-4567")
	assert.NotContains(t, text, "Menu")
	assert.NotContains(t, text, "Copyright 2025")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color:red")
}

func TestFetch_NonHTMLRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 binary stuff"))
	}))
	defer srv.Close()

	f := NewPageFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not html")
}

func TestFetch_SniffsHTMLWithoutContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(`<!DOCTYPE html><HTML><head><title>Sniffed</title></head><body>hello</body></HTML>`))
	}))
	defer srv.Close()

	f := NewPageFetcher()
	text, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "# Sniffed")
	assert.Contains(t, text, "hello")
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewPageFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewPageFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestNormalize_MissingTitle(t *testing.T) {
	text, err := Normalize([]byte(`<html><body><p>content only</p></body></html>`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# No Title\n\n"))
	assert.Contains(t, text, "content only")
}

func TestNormalize_WhitespaceCollapse(t *testing.T) {
	text, err := Normalize([]byte("<html><body><p>Hello     world</p>\n\n\n\n\n<p>again</p></body></html>"))
	require.NoError(t, err)
	assert.NotContains(t, text, "     ")
	assert.NotContains(t, text, "\n\n\n")
}
