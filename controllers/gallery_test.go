package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
)

// tiny valid PNG header plus padding; enough for the extension/MIME checks.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func galleryUpload(t *testing.T, app *fiber.App, method, path, token, filename string, fields map[string]string) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if filename != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
		contentType := "image/png"
		switch {
		case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
			contentType = "image/jpeg"
		case strings.HasSuffix(filename, ".txt"):
			contentType = "text/plain"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(pngBytes); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, raw
}

func TestGalleryCreateAndList(t *testing.T) {
	utils.UploadDir = t.TempDir()
	app, conn := newTestApp(t)
	admin := adminToken(t)

	// Image is required.
	if code, _ := galleryUpload(t, app, http.MethodPost, "/api/gallery/", admin, "", map[string]string{"title": "x"}); code != http.StatusBadRequest {
		t.Errorf("create without image = %d, want 400", code)
	}
	// Only image extensions pass.
	if code, _ := galleryUpload(t, app, http.MethodPost, "/api/gallery/", admin, "notes.txt", map[string]string{"title": "x"}); code != http.StatusBadRequest {
		t.Errorf("create with txt file = %d, want 400", code)
	}

	code, raw := galleryUpload(t, app, http.MethodPost, "/api/gallery/", admin, "altar.png", map[string]string{
		"title":    "საკურთხეველი",
		"titleEn":  "The Altar",
		"category": "interior",
		"order":    "2",
	})
	if code != http.StatusCreated {
		t.Fatalf("create = %d (%s), want 201", code, raw)
	}
	var item models.GalleryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if !strings.HasPrefix(item.ImageURL, "/uploads/gallery-") {
		t.Errorf("imageUrl = %q, want /uploads/gallery-*", item.ImageURL)
	}
	if item.Category != models.CategoryInterior {
		t.Errorf("category = %q, want interior", item.Category)
	}

	// Hidden items stay out of the public listing.
	hidden := models.GalleryItem{Title: "h", TitleEn: "h", ImageURL: "/uploads/h.png", Category: models.CategoryOther, IsVisible: false}
	if err := conn.Create(&hidden).Error; err != nil {
		t.Fatalf("seed hidden item: %v", err)
	}
	conn.Model(&hidden).Update("is_visible", false)

	var items []models.GalleryItem
	if code := request(t, app, http.MethodGet, "/api/gallery/", nil, "", &items); code != http.StatusOK {
		t.Fatalf("list = %d, want 200", code)
	}
	if len(items) != 1 {
		t.Fatalf("public list = %d items, want 1", len(items))
	}
	if items[0].ID != item.ID {
		t.Errorf("public list returned the wrong item")
	}

	// Category filter.
	if code := request(t, app, http.MethodGet, "/api/gallery/?category=exterior", nil, "", &items); code != http.StatusOK || len(items) != 0 {
		t.Errorf("category filter = %d with %d items, want 200 with 0", code, len(items))
	}
}

func TestGalleryUpdateAndDelete(t *testing.T) {
	utils.UploadDir = t.TempDir()
	app, _ := newTestApp(t)
	admin := adminToken(t)

	code, raw := galleryUpload(t, app, http.MethodPost, "/api/gallery/", admin, "dome.jpg", map[string]string{
		"title":   "გუმბათი",
		"titleEn": "The Dome",
	})
	if code != http.StatusCreated {
		t.Fatalf("create = %d, want 201", code)
	}
	var item models.GalleryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	path := "/api/gallery/" + itoa(item.ID)
	code, raw = galleryUpload(t, app, http.MethodPut, path, admin, "", map[string]string{
		"titleEn":   "The Golden Dome",
		"isVisible": "false",
	})
	if code != http.StatusOK {
		t.Fatalf("update = %d (%s), want 200", code, raw)
	}
	var updated models.GalleryItem
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.TitleEn != "The Golden Dome" || updated.IsVisible {
		t.Errorf("update not applied: %+v", updated)
	}

	if code := request(t, app, http.MethodDelete, path, nil, admin, nil); code != http.StatusOK {
		t.Fatalf("delete = %d, want 200", code)
	}
	if code := request(t, app, http.MethodGet, path, nil, "", nil); code != http.StatusNotFound {
		t.Errorf("deleted item still served = %d, want 404", code)
	}

	if code := request(t, app, http.MethodDelete, "/api/gallery/99999", nil, admin, nil); code != http.StatusNotFound {
		t.Errorf("deleting missing item = %d, want 404", code)
	}
}
