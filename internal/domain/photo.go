package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// drivePathRe matches the file id in share links like
	// https://drive.google.com/file/d/<id>/view.
	drivePathRe = regexp.MustCompile(`/d/([a-zA-Z0-9_-]{10,})`)

	// driveQueryRe matches the file id in links like
	// https://drive.google.com/open?id=<id>.
	driveQueryRe = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{10,})`)
)

// DriveFileID extracts a Google Drive file identifier from a share link,
// trying the path-segment pattern then the query-parameter pattern. Returns
// "" when the link matches neither.
func DriveFileID(link string) string {
	link = strings.TrimSpace(link)
	if m := drivePathRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	if m := driveQueryRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// Photo is one gallery entry: a thumbnail, a full-resolution image, and a
// display caption.
type Photo struct {
	Thumb   string `json:"thumb"`
	Full    string `json:"full"`
	Caption string `json:"caption"`
}

// ResolvePhoto builds the gallery entry for a record. Drive share links are
// rewritten into thumbnail (w450) and full-resolution (w2048) image URLs;
// any other link passes through unchanged for both. Returns false when the
// record has no photo link.
func ResolvePhoto(r Record) (Photo, bool) {
	link := strings.TrimSpace(r.PhotoLink)
	if link == "" {
		return Photo{}, false
	}

	p := Photo{Thumb: link, Full: link, Caption: r.Caption()}
	if id := DriveFileID(link); id != "" {
		p.Thumb = fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w450", id)
		p.Full = fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w2048", id)
	}
	return p, true
}

// Gallery resolves photos for every row of t in order, deduplicating by raw
// link. Empty when the photo column is absent.
func Gallery(t Table) []Photo {
	if !t.Schema.Photo {
		return nil
	}
	seen := map[string]bool{}
	var photos []Photo
	for _, r := range t.Rows {
		link := strings.TrimSpace(r.PhotoLink)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		if p, ok := ResolvePhoto(r); ok {
			photos = append(photos, p)
		}
	}
	return photos
}
