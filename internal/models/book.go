// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// BookTemplate names a visual style preset applied during HTML rendering.
// Template selection only changes presentational CSS, never which content
// is compiled.
type BookTemplate string

const (
	BookTemplateStandard    BookTemplate = "standard"
	BookTemplateAcademic    BookTemplate = "academic"
	BookTemplateCoffeeTable BookTemplate = "coffee-table"
	BookTemplateMinimal     BookTemplate = "minimal"
)

// BookPageSize names a physical page geometry for the PDF output.
type BookPageSize string

const (
	BookPageSizeA4       BookPageSize = "a4"
	BookPageSizeUSLetter BookPageSize = "us-letter"
	BookPageSizeA5       BookPageSize = "a5"
	BookPageSize6x9      BookPageSize = "6x9"
)

// BookFontSize is the three-step body font scale.
type BookFontSize string

const (
	BookFontSizeSmall  BookFontSize = "small"
	BookFontSizeMedium BookFontSize = "medium"
	BookFontSizeLarge  BookFontSize = "large"
)

// BookCompilationOptions is the parameter object for one compile
// invocation. It is never persisted. SortBy is accepted and echoed back but
// does not reorder output — compilations render in fetch order.
type BookCompilationOptions struct {
	Title                  string       `json:"title"`
	Subtitle               string       `json:"subtitle,omitempty"`
	Author                 string       `json:"author"`
	IncludeStatus          string       `json:"includeStatus,omitempty"`
	SortBy                 string       `json:"sortBy,omitempty"`
	IncludeImages          bool         `json:"includeImages"`
	IncludeCategories      []uuid.UUID  `json:"includeCategories,omitempty"`
	IncludeTags            []uuid.UUID  `json:"includeTags,omitempty"`
	YearFrom               *int         `json:"yearFrom,omitempty"`
	YearTo                 *int         `json:"yearTo,omitempty"`
	Template               BookTemplate `json:"template"`
	PageSize               BookPageSize `json:"pageSize"`
	FontSize               BookFontSize `json:"fontSize"`
	IncludeTableOfContents bool         `json:"includeTableOfContents"`
	IncludeCoverPage       bool         `json:"includeCoverPage"`
	IncludeIndex           bool         `json:"includeIndex"`
	ManuscriptID           *uuid.UUID   `json:"manuscriptId,omitempty"`
}

// BookChapter is one chapter of the assembled book. The organizer currently
// produces exactly one chapter per compilation.
type BookChapter struct {
	Title string              `json:"title"`
	Posts []PostWithRelations `json:"posts"`
}

// TOCEntry is one line of the generated table of contents — one per
// chapter, not per item.
type TOCEntry struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
	Level int    `json:"level"`
	Posts int    `json:"posts"`
}

// BookMetadata describes the assembled book as a whole.
type BookMetadata struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Author      string `json:"author"`
	GeneratedAt string `json:"generatedAt"`
	TotalPosts  int    `json:"totalPosts"`
}

// BookStructure is the organizer's output: everything the renderer needs to
// produce the final HTML document.
type BookStructure struct {
	Metadata        BookMetadata  `json:"metadata"`
	Chapters        []BookChapter `json:"chapters"`
	TableOfContents []TOCEntry    `json:"tableOfContents"`
}

// CompilationJob is the record written to the cache after a compile run,
// read back by the status endpoint. Runs are synchronous, so the stage is
// always terminal by the time anyone can ask.
type CompilationJob struct {
	JobID       string `json:"jobId"`
	Stage       string `json:"stage"`
	Progress    int    `json:"progress"`
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}
