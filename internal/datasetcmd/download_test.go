package datasetcmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planet-texas-2050/sites-stories/internal/images"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.csv")
	content := "Entry_ID,Title,Description,Image_url\n" +
		"A,First,One," + srv.URL + "/a.jpg\n" +
		"B,Second,Two," + srv.URL + "/b.jpg\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out := filepath.Join(dir, "mirror")
	var buf bytes.Buffer
	if err := executeDownload(context.Background(), &buf, images.NewFetcher(), path, out, 1); err != nil {
		t.Fatalf("executeDownload: %v", err)
	}

	if !strings.Contains(buf.String(), "Downloaded: 1") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
	if _, err := os.Stat(filepath.Join(out, "A.jpg")); err != nil {
		t.Errorf("A.jpg missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "B.jpg")); !os.IsNotExist(err) {
		t.Error("limit not applied")
	}
}
