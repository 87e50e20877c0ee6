// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts entity profile markdown into sanitized HTML for
// the public directory pages.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlSanitizer strips dangerous elements from rendered markdown. UGCPolicy
// allows the safe formatting tags admins actually use while removing scripts
// and event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders markdown source to sanitized HTML. Returns an empty
// string for empty input and falls back to the sanitized source text if the
// markdown fails to parse.
func Markdown(source string) string {
	if source == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return htmlSanitizer.Sanitize(source)
	}
	return htmlSanitizer.Sanitize(buf.String())
}
