package service

import (
	"strings"
	"testing"
)

func TestRenderCardHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{"plain text", "What is React?", []string{"<p>What is React?</p>"}, nil},
		{"emphasis", "A **library**", []string{"<strong>library</strong>"}, nil},
		{"inline code", "Use `useEffect`", []string{"<code>useEffect</code>"}, nil},
		{"script removed", "hi <script>alert(1)</script>", nil, []string{"<script", "alert(1)</script>"}},
		{"javascript link removed", "[x](javascript:alert(1))", nil, []string{"javascript:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCardHTML(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderCardHTML(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("RenderCardHTML(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}
