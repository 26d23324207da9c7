package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filebot/internal/common"
)

func TestWeb3Transfer(t *testing.T) {
	var gotAuth, gotName string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotName = r.Header.Get("X-NAME")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"cid":"bafybeigdyr"}`))
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	cid, err := client.Transfer(context.Background(), "tok", "report one.pdf",
		strings.NewReader("payload"), 7)
	require.NoError(t, err)
	assert.Equal(t, "bafybeigdyr", cid)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "report%20one.pdf", gotName)
	assert.Equal(t, "payload", string(gotBody))
}

func TestWeb3Transfer_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	_, err := client.Transfer(context.Background(), "bad", "a.txt", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, common.ErrorInvalidCredential)
}

func TestWeb3Transfer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	_, err := client.Transfer(context.Background(), "tok", "a.txt", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
}

func TestWeb3Transfer_MissingCID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	_, err := client.Transfer(context.Background(), "tok", "a.txt", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without cid")
}

func TestWeb3QueryUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/uploads", r.URL.Path)
		require.Equal(t, "500", r.URL.Query().Get("size"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"dagSize":100},{"dagSize":250},{"dagSize":0}]`))
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	total, err := client.QueryUsage(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)
}

func TestWeb3QueryUsage_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewWeb3Client(srv.URL)
	_, err := client.QueryUsage(context.Background(), "tok")
	assert.ErrorIs(t, err, common.ErrorInvalidCredential)
}
