package render

import (
	"bytes"
	"strings"
	"testing"

	"poketimes/internal/models"
	"poketimes/internal/store"
)

func TestHTML_Empty(t *testing.T) {
	out, err := HTMLString(View(store.Empty()))
	if err != nil {
		t.Fatalf("HTMLString failed: %v", err)
	}

	for _, want := range []string{
		`<div class="App">`,
		`<nav class="nav-wrapper red darken-3">`,
		`<a href="/about">About</a>`,
		`<a href="/contact">Contact</a>`,
		`<div class="center">No posts to show</div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestHTML_Card(t *testing.T) {
	out, err := HTMLString(View(store.Loaded([]models.Post{{ID: 1, AuthorID: 1, Title: "T", Body: "B"}})))
	if err != nil {
		t.Fatalf("HTMLString failed: %v", err)
	}

	for _, want := range []string{
		`<img src="assets/pokeball.png" alt="A Pokeball"/>`,
		`<a href="/posts/1"><span class="card-title red-text">T</span></a>`,
		`<p>B</p>`,
		`<form method="post" action="/actions/delete/1">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, EmptyMessage) {
		t.Error("placeholder rendered alongside posts")
	}
}

func TestHTML_EscapesPostContent(t *testing.T) {
	post := models.Post{ID: 2, Title: `<script>alert("x")</script>`, Body: `a & b "quoted"`}

	out, err := HTMLString(View(store.Loaded([]models.Post{post})))
	if err != nil {
		t.Fatalf("HTMLString failed: %v", err)
	}

	if strings.Contains(out, "<script>") {
		t.Errorf("title was not escaped:\n%s", out)
	}

	if !strings.Contains(out, "&lt;script&gt;") || !strings.Contains(out, "a &amp; b &#34;quoted&#34;") {
		t.Errorf("unexpected escaping:\n%s", out)
	}
}

func TestPage_WrapsBody(t *testing.T) {
	var buf bytes.Buffer

	if err := Page(&buf, "Poke' Times", View(store.Empty())); err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	out := buf.String()

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("Expected doctype first, got %q", out[:min(len(out), 40)])
	}

	if !strings.Contains(out, "<title>Poke&#39; Times</title>") {
		t.Errorf("title not escaped into layout:\n%s", out)
	}

	if !strings.Contains(out, `<section id="root"><div class="App">`) {
		t.Errorf("body not embedded verbatim:\n%s", out)
	}
}
