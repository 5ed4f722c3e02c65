package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		if bytes.Contains(buf.Bytes(), []byte("admin@example.com")) {
			_, _ = w.Write([]byte(`{"token":"abc.def.ghi"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid user"}`))
	}))
	defer ts.Close()

	t.Run("prints token", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-base-url", ts.URL, "-email", "admin@example.com"}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Equal(t, "Token retrieved:\nabc.def.ghi\n", stdout.String())
	})

	t.Run("prints server error body", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-base-url", ts.URL, "-email", "nobody@example.com"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: {\"message\":\"Invalid user\"}\n", stdout.String())
	})

	t.Run("bad base url", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-base-url", "not a url"}, &stdout, &stderr)
		assert.Equal(t, 2, code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-nope"}, &stdout, &stderr)
		assert.Equal(t, 2, code)
	})
}
