package hypothesis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testAnnotation(text string) Annotation {
	return Annotation{
		URI:  "https://bucket.s3.us-east-1.amazonaws.com/uploads/u1/1.pdf",
		Text: text,
		Target: []Target{{
			Source: "https://bucket.s3.us-east-1.amazonaws.com/uploads/u1/1.pdf",
			Selector: []TextQuoteSelector{{
				Type:  "TextQuoteSelector",
				Exact: "Software Engineer",
			}},
		}},
	}
}

func TestCreateAnnotation(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/annotations" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var in Annotation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Group != "__world__" {
			t.Errorf("group = %q, want default", in.Group)
		}
		in.ID = "ann-1"
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("secret-token", srv.URL)
	created, err := c.CreateAnnotation(context.Background(), testAnnotation("feedback"))
	if err != nil {
		t.Fatalf("CreateAnnotation: %v", err)
	}
	if created.ID != "ann-1" {
		t.Errorf("id = %q", created.ID)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestCreateAnnotationValidation(t *testing.T) {
	c := NewClientWithBaseURL("tok", "http://unused.invalid")

	if _, err := c.CreateAnnotation(context.Background(), Annotation{Text: "x"}); err == nil {
		t.Error("missing uri accepted")
	}
	if _, err := c.CreateAnnotation(context.Background(), Annotation{URI: "u", Target: []Target{{Source: "u"}}}); err == nil {
		t.Error("missing text accepted")
	}
	if _, err := c.CreateAnnotation(context.Background(), Annotation{URI: "u", Text: "x"}); err == nil {
		t.Error("missing target accepted")
	}
}

func TestCreateBulkCountsFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Annotation{ID: "ok"})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", srv.URL)
	result := c.CreateBulk(context.Background(), []Annotation{
		testAnnotation("one"),
		testAnnotation("two"),
		testAnnotation("three"),
	})

	if result.Total != 3 || result.Created != 2 || result.Failed != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("uri") != "https://bucket/doc.pdf" || q.Get("limit") != "100" || q.Get("order") != "asc" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"rows": []Annotation{{ID: "a1", Text: "first"}, {ID: "a2", Text: "second"}},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("tok", srv.URL)
	rows, err := c.Search(context.Background(), "https://bucket/doc.pdf")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "a1" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestAuthorName(t *testing.T) {
	if got := (Annotation{User: "acct:lenny@hypothes.is"}).AuthorName(); got != "lenny" {
		t.Errorf("AuthorName = %q", got)
	}
	if got := (Annotation{}).AuthorName(); got != "" {
		t.Errorf("AuthorName on empty user = %q", got)
	}
}

func TestViaURL(t *testing.T) {
	doc := "https://bucket.s3.us-east-1.amazonaws.com/uploads/u1/1.pdf"
	via := ViaURL(doc)
	if via != "https://via.hypothes.is/"+doc {
		t.Errorf("ViaURL = %q", via)
	}
	if StripViaPrefix(via) != doc {
		t.Errorf("StripViaPrefix(%q) = %q", via, StripViaPrefix(via))
	}
	if StripViaPrefix(doc) != doc {
		t.Error("StripViaPrefix changed a non-via url")
	}
}
