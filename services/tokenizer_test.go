package services

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "simple fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted comma stays in field",
			line: `a,"b,c",d`,
			want: []string{"a", "b,c", "d"},
		},
		{
			name: "escaped quote inside quoted field",
			line: `a,"b""c",d`,
			want: []string{"a", `b"c`, "d"},
		},
		{
			name: "fields are trimmed",
			line: "  a ,  b  , c ",
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty fields preserved",
			line: "a,,c",
			want: []string{"a", "", "c"},
		},
		{
			name: "trailing comma yields empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "unmatched quote swallows rest of line",
			line: `a,"b,c`,
			want: []string{"a", "b,c"},
		},
		{
			name: "currency with comma inside quotes",
			line: `EXT-2025-0001,"₱4,000.00",Proposal`,
			want: []string{"EXT-2025-0001", "₱4,000.00", "Proposal"},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "whitespace only line",
			line: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unix newlines",
			text: "one\ntwo\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "windows newlines",
			text: "one\r\ntwo\r\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "blank lines dropped",
			text: "one\n\n  \ntwo\n",
			want: []string{"one", "two"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
