// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package commons builds fetchable URLs for commonsMedia values.
package commons

import (
	"strconv"
	"strings"
)

// FilePathBase is the redirecting file endpoint on Wikimedia Commons.
const FilePathBase = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// ImageURL returns the Special:FilePath URL for filename. A width > 0 asks
// Commons for a thumbnail of that many pixels. The filename is used as
// given; Commons resolves spaces and underscores alike.
func ImageURL(filename string, width int) string {
	url := FilePathBase + filename
	if width > 0 {
		url += "?width=" + strconv.Itoa(width)
	}
	return url
}

// Filename strips a "File:" namespace prefix, which some tools include in
// commonsMedia values they emit.
func Filename(value string) string {
	if name, ok := strings.CutPrefix(value, "File:"); ok {
		return name
	}
	return value
}
