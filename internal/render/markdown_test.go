// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		exclude string
	}{
		{
			name:   "empty input",
			source: "",
			want:   "",
		},
		{
			name:   "basic formatting",
			source: "Our **mission** is excellence.",
			want:   "<strong>mission</strong>",
		},
		{
			name:   "headings",
			source: "## Objectives",
			want:   "<h2>Objectives</h2>",
		},
		{
			name:    "scripts stripped",
			source:  "Hello <script>alert('x')</script> world",
			exclude: "<script>",
		},
		{
			name:    "event handlers stripped",
			source:  `<a href="https://ieee.org" onclick="steal()">IEEE</a>`,
			want:    "ieee.org",
			exclude: "onclick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.source)
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
			if tt.want == "" && tt.exclude == "" && got != "" {
				t.Errorf("Markdown(%q) = %q, want empty", tt.source, got)
			}
			if tt.exclude != "" && strings.Contains(got, tt.exclude) {
				t.Errorf("Markdown(%q) = %q, must not contain %q", tt.source, got, tt.exclude)
			}
		})
	}
}
