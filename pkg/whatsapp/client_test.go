package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendTextNormalizesBody(t *testing.T) {
	var captured sendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/555000/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", auth)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"messages":[{"id":"wamid.out"}]}`)
	}))
	defer server.Close()

	client := NewClient("test-token", "555000")
	client.BaseURL = server.URL

	err := client.SendText(context.Background(), "15551234567", "**Answer**: see page 2【1†doc】.")
	if err != nil {
		t.Fatalf("SendText error: %v", err)
	}

	if captured.MessagingProduct != "whatsapp" {
		t.Errorf("messaging_product = %q", captured.MessagingProduct)
	}
	if captured.To != "15551234567" {
		t.Errorf("to = %q", captured.To)
	}
	if captured.Text.Body != "*Answer*: see page 2." {
		t.Errorf("body = %q, normalization not applied", captured.Text.Body)
	}
}

func TestSendTextErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid token"}}`)
	}))
	defer server.Close()

	client := NewClient("bad-token", "555000")
	client.BaseURL = server.URL

	err := client.SendText(context.Background(), "15551234567", "hi")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchMediaTwoStepDownload(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/media-123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(mediaInfoResponse{
			Url:      server.URL + "/download/media-123",
			MimeType: "application/pdf",
		})
	})
	mux.HandleFunc("/download/media-123", func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("download missing auth header, got %q", auth)
		}
		w.Write([]byte("%PDF-1.4 content"))
	})

	client := NewClient("test-token", "555000")
	client.BaseURL = server.URL

	data, err := client.FetchMedia(context.Background(), "media-123")
	if err != nil {
		t.Fatalf("FetchMedia error: %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Errorf("unexpected media bytes: %q", data)
	}
}

func TestFetchMediaInfoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-token", "555000")
	client.BaseURL = server.URL

	_, err := client.FetchMedia(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error when media lookup fails")
	}
}
