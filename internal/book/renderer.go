// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package book

import (
	"html"
	"strconv"
	"strings"
	"time"

	"chronicle/internal/models"
)

// Geometry is a physical page description. Widths and heights are in
// PostScript points (1/72 inch); CSSSize is the value for the @page rule.
type Geometry struct {
	WidthPt  float64
	HeightPt float64
	CSSSize  string
}

// pageGeometries is the fixed lookup table keyed by page size option.
var pageGeometries = map[models.BookPageSize]Geometry{
	models.BookPageSizeA4:       {WidthPt: 595.28, HeightPt: 841.89, CSSSize: "A4"},
	models.BookPageSizeUSLetter: {WidthPt: 612, HeightPt: 792, CSSSize: "Letter"},
	models.BookPageSizeA5:       {WidthPt: 419.53, HeightPt: 595.28, CSSSize: "A5"},
	models.BookPageSize6x9:      {WidthPt: 432, HeightPt: 648, CSSSize: "6in 9in"},
}

// GeometryFor returns the page geometry for a page size option. Unknown
// sizes fall back to A4.
func GeometryFor(size models.BookPageSize) Geometry {
	if g, ok := pageGeometries[size]; ok {
		return g
	}
	return pageGeometries[models.BookPageSizeA4]
}

// fontSizeFor maps the three-step font scale to a CSS pixel size.
// Unknown values get the medium size.
func fontSizeFor(size models.BookFontSize) string {
	switch size {
	case models.BookFontSizeSmall:
		return "12px"
	case models.BookFontSizeLarge:
		return "16px"
	default:
		return "14px"
	}
}

// RenderHTML emits the complete HTML document for a book structure. It is a
// pure function of its inputs: identical structure and options produce
// byte-identical output.
func RenderHTML(structure *models.BookStructure, opts *models.BookCompilationOptions) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("<title>" + html.EscapeString(structure.Metadata.Title) + "</title>\n")
	b.WriteString("<style>" + renderStyles(opts) + "</style>\n")
	b.WriteString("</head>\n<body>\n")

	if opts.IncludeCoverPage {
		renderCover(&b, &structure.Metadata)
	}
	if opts.IncludeTableOfContents {
		renderTOC(&b, structure.TableOfContents)
	}
	renderChapters(&b, structure.Chapters)

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func renderCover(b *strings.Builder, meta *models.BookMetadata) {
	b.WriteString("<div class=\"cover-page\">\n")
	b.WriteString("<h1 class=\"cover-title\">" + html.EscapeString(meta.Title) + "</h1>\n")
	if meta.Subtitle != "" {
		b.WriteString("<h2 class=\"cover-subtitle\">" + html.EscapeString(meta.Subtitle) + "</h2>\n")
	}
	b.WriteString("<div class=\"cover-author\">by " + html.EscapeString(meta.Author) + "</div>\n")
	b.WriteString("<div class=\"cover-count\">" + strconv.Itoa(meta.TotalPosts) + " Historical Events</div>\n")
	b.WriteString("</div>\n")
}

func renderTOC(b *strings.Builder, entries []models.TOCEntry) {
	b.WriteString("<div class=\"toc\">\n")
	b.WriteString("<h2 class=\"toc-title\">Table of Contents</h2>\n")
	for _, entry := range entries {
		b.WriteString("<div class=\"toc-entry level-" + strconv.Itoa(entry.Level) + "\">")
		b.WriteString("<span>" + html.EscapeString(entry.Title) + "</span>")
		b.WriteString("<span>" + strconv.Itoa(entry.Page) + "</span>")
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
}

func renderChapters(b *strings.Builder, chapters []models.BookChapter) {
	for _, chapter := range chapters {
		b.WriteString("<div class=\"chapter\">\n")
		b.WriteString("<h2 class=\"chapter-title\">" + html.EscapeString(chapter.Title) + "</h2>\n")
		for i := range chapter.Posts {
			renderPost(b, &chapter.Posts[i], i < len(chapter.Posts)-1)
		}
		b.WriteString("</div>\n")
	}
}

func renderPost(b *strings.Builder, post *models.PostWithRelations, divider bool) {
	b.WriteString("<div class=\"post\">\n")
	b.WriteString("<h3 class=\"post-title\">" + html.EscapeString(post.Title) + "</h3>\n")
	b.WriteString("<div class=\"post-date\">" + formatEventDate(post.DateOfEvent) + ", " + strconv.Itoa(post.YearOfEvent) + "</div>\n")
	b.WriteString("<div class=\"post-excerpt\">" + html.EscapeString(post.Excerpt) + "</div>\n")
	b.WriteString("<div class=\"post-content\">" + formatContent(post.Content) + "</div>\n")

	b.WriteString("<div class=\"post-categories\"><strong>Categories:</strong>")
	for _, cat := range post.Categories {
		b.WriteString("<span class=\"category\">" + html.EscapeString(cat.Name) + "</span>")
	}
	b.WriteString("</div>\n")

	b.WriteString("<div class=\"post-tags\"><strong>Tags:</strong>")
	for _, tag := range post.Tags {
		b.WriteString("<span class=\"tag\">" + html.EscapeString(tag.Name) + "</span>")
	}
	b.WriteString("</div>\n")

	if divider {
		b.WriteString("<div class=\"divider\"></div>\n")
	}
	b.WriteString("</div>\n")
}

// formatEventDate renders a YYYY-MM-DD date as "June 28, 1919". Dates that
// do not parse are emitted escaped but otherwise untouched.
func formatEventDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return html.EscapeString(date)
	}
	return parsed.Format("January 2, 2006")
}

// formatContent splits content on blank lines into paragraph elements;
// single embedded newlines become line breaks.
func formatContent(content string) string {
	var b strings.Builder
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		escaped := html.EscapeString(paragraph)
		b.WriteString("<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>")
	}
	return b.String()
}

func renderStyles(opts *models.BookCompilationOptions) string {
	geo := GeometryFor(opts.PageSize)
	fontSize := fontSizeFor(opts.FontSize)

	var b strings.Builder
	b.WriteString(`
@page { size: ` + geo.CSSSize + `; margin: 1in 0.75in; }
* { box-sizing: border-box; }
body {
  font-family: 'Georgia', 'Times New Roman', serif;
  font-size: ` + fontSize + `;
  line-height: 1.6;
  color: #333;
  margin: 0;
  padding: 0;
}
.page-break { page-break-before: always; }
.cover-page {
  display: flex;
  flex-direction: column;
  justify-content: center;
  align-items: center;
  height: 100vh;
  text-align: center;
  page-break-after: always;
}
.cover-title { font-size: 2.5em; font-weight: bold; margin-bottom: 0.5em; color: #1a365d; }
.cover-subtitle { font-size: 1.3em; margin-bottom: 2em; color: #666; font-style: italic; }
.cover-author { font-size: 1.2em; margin-top: 2em; color: #333; }
.cover-count { margin-top: 3em; font-size: 0.9em; color: #666; }
.toc { page-break-after: always; }
.toc-title { font-size: 1.8em; font-weight: bold; margin-bottom: 1em; text-align: center; color: #1a365d; }
.toc-entry {
  display: flex;
  justify-content: space-between;
  margin-bottom: 0.5em;
  border-bottom: 1px dotted #ccc;
  padding-bottom: 0.2em;
}
.toc-entry.level-1 { font-weight: bold; margin-top: 1em; }
.chapter { page-break-before: always; }
.chapter-title {
  font-size: 1.5em;
  font-weight: bold;
  margin-bottom: 1.5em;
  color: #1a365d;
  border-bottom: 2px solid #1a365d;
  padding-bottom: 0.5em;
}
.post { margin-bottom: 2em; page-break-inside: avoid; }
.post-title { font-size: 1.2em; font-weight: bold; margin-bottom: 0.5em; color: #2d3748; }
.post-date { font-size: 0.9em; color: #666; margin-bottom: 0.5em; font-style: italic; }
.post-excerpt { margin-bottom: 1em; font-weight: 500; color: #4a5568; }
.post-content { text-align: justify; margin-bottom: 1em; }
.post-content p { margin-bottom: 0.8em; }
.post-categories, .post-tags { margin-top: 1em; font-size: 0.9em; }
.category, .tag {
  display: inline-block;
  background-color: #e2e8f0;
  color: #2d3748;
  padding: 0.2em 0.5em;
  margin: 0.1em;
  border-radius: 0.3em;
  font-size: 0.8em;
}
.divider { border-top: 1px solid #e2e8f0; margin: 1.5em 0; }
`)
	b.WriteString(templateStyles(opts.Template))
	return b.String()
}

// templateStyles layers the named visual preset on the base stylesheet.
// Template choice only changes presentation, never content selection.
func templateStyles(template models.BookTemplate) string {
	switch template {
	case models.BookTemplateAcademic:
		return `
body { font-family: 'Times New Roman', serif; }
.chapter-title { text-transform: uppercase; letter-spacing: 1px; }
.post-title { text-decoration: underline; }
`
	case models.BookTemplateCoffeeTable:
		return `
.post-image { max-width: 80%; margin: 1em auto; display: block; }
.image-caption { font-size: 1em; margin-bottom: 1em; }
.post { page-break-before: always; }
`
	case models.BookTemplateMinimal:
		return `
.chapter-title { border: none; font-size: 1.3em; }
.category, .tag { display: none; }
.post-date { display: none; }
`
	default:
		return ""
	}
}
