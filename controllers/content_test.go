package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stnicholas-parish/parish-app/models"
)

func TestContentUpsertAndFetch(t *testing.T) {
	app, conn := newTestApp(t)
	admin := adminToken(t)

	payload := map[string]any{
		"key":       "about_parish",
		"title":     "ჩვენი ტაძარი",
		"titleEn":   "Our Church",
		"content":   "ისტორია",
		"contentEn": "History text",
		"type":      "about",
		"metadata":  map[string]string{"hero": "true"},
	}

	// Writes require a token.
	if code := request(t, app, http.MethodPost, "/api/content/", payload, "", nil); code != http.StatusUnauthorized {
		t.Errorf("unauthenticated upsert = %d, want 401", code)
	}

	var entry models.Content
	if code := request(t, app, http.MethodPost, "/api/content/", payload, admin, &entry); code != http.StatusOK {
		t.Fatalf("upsert = %d, want 200", code)
	}
	if entry.TitleEn != "Our Church" {
		t.Errorf("titleEn = %q", entry.TitleEn)
	}

	// Upserting the same key updates in place.
	payload["titleEn"] = "Our Cathedral"
	if code := request(t, app, http.MethodPost, "/api/content/", payload, admin, &entry); code != http.StatusOK {
		t.Fatalf("second upsert = %d, want 200", code)
	}
	var count int64
	conn.Model(&models.Content{}).Where("key = ?", "about_parish").Count(&count)
	if count != 1 {
		t.Errorf("%d rows for key, want 1", count)
	}

	var fetched models.Content
	if code := request(t, app, http.MethodGet, "/api/content/about_parish", nil, "", &fetched); code != http.StatusOK {
		t.Fatalf("get by key = %d, want 200", code)
	}
	if fetched.TitleEn != "Our Cathedral" {
		t.Errorf("fetched titleEn = %q, want updated value", fetched.TitleEn)
	}
	if fetched.Metadata["hero"] != "true" {
		t.Errorf("metadata round trip = %v", fetched.Metadata)
	}

	if code := request(t, app, http.MethodGet, "/api/content/missing_key", nil, "", nil); code != http.StatusNotFound {
		t.Errorf("missing key = %d, want 404", code)
	}

	if code := request(t, app, http.MethodDelete, "/api/content/about_parish", nil, admin, nil); code != http.StatusOK {
		t.Fatalf("delete = %d, want 200", code)
	}
	if code := request(t, app, http.MethodGet, "/api/content/about_parish", nil, "", nil); code != http.StatusNotFound {
		t.Errorf("deleted key still served = %d, want 404", code)
	}
}

func TestContentListFilters(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t)

	for _, entry := range []map[string]any{
		{"key": "hero_main", "title": "a", "titleEn": "a", "content": "x", "contentEn": "x", "type": "hero"},
		{"key": "about_history", "title": "b", "titleEn": "b", "content": "y", "contentEn": "y", "type": "about"},
	} {
		if code := request(t, app, http.MethodPost, "/api/content/", entry, admin, nil); code != http.StatusOK {
			t.Fatalf("seed upsert = %d, want 200", code)
		}
	}

	var entries []models.Content
	if code := request(t, app, http.MethodGet, "/api/content/?type=hero", nil, "", &entries); code != http.StatusOK {
		t.Fatalf("filtered list = %d, want 200", code)
	}
	if len(entries) != 1 || entries[0].Key != "hero_main" {
		t.Errorf("type filter returned %d entries", len(entries))
	}
}
