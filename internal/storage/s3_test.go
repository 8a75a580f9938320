package storage

import "testing"

func TestNewUnconfiguredReturnsNil(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "bucket", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("missing endpoint/credentials should disable storage")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "us-east-1", "key", "secret", "books-bucket", "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := c.FileURL("books/a.pdf"); got != "https://s3.example.com/books-bucket/books/a.pdf" {
		t.Errorf("path-style url: got %q", got)
	}

	c, err = New("https://s3.example.com", "us-east-1", "key", "secret", "books-bucket", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := c.FileURL("books/a.pdf"); got != "https://cdn.example.com/books/a.pdf" {
		t.Errorf("public url: got %q", got)
	}
}
