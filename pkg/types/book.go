// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ChapterState classifies a chapter's build freshness.
type ChapterState string

const (
	// ChapterFresh means the source file is unchanged since the last build.
	ChapterFresh ChapterState = "fresh"
	// ChapterStale means the source file changed after the last build.
	ChapterStale ChapterState = "stale"
	// ChapterNew means the chapter has never been built.
	ChapterNew ChapterState = "new"
	// ChapterMissing means the manifest names a file that does not exist.
	ChapterMissing ChapterState = "missing"
)

// Manifest describes a book manuscript: metadata plus the ordered chapter list.
// Loaded from book.yaml at the manuscript root.
type Manifest struct {
	// Title is the book title used in the document title block.
	Title string `json:"title" yaml:"title"`

	// Authors lists the book authors in title-page order.
	Authors []string `json:"authors" yaml:"authors"`

	// Chapters lists chapter file paths, relative to the manuscript root,
	// in reading order.
	Chapters []string `json:"chapters" yaml:"chapters"`
}

// ChapterRecord holds the build-state row the tracker keeps per chapter.
type ChapterRecord struct {
	// Path is the chapter file path relative to the manuscript root.
	Path string `json:"path" yaml:"path"`

	// Fingerprint is the SHA-256 hex digest of the chapter source.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	// ModTime is the source file modification time at build.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`

	// BuiltAt is when the chapter was last assembled into the book.
	BuiltAt time.Time `json:"built_at" yaml:"built_at"`

	// Words is the word count of the chapter source.
	Words int `json:"words" yaml:"words"`
}

// ChapterStatus pairs a chapter path with its computed freshness.
type ChapterStatus struct {
	Path  string       `json:"path" yaml:"path"`
	State ChapterState `json:"state" yaml:"state"`
	Words int          `json:"words" yaml:"words"`
}
