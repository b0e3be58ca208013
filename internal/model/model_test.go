package model

import (
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		choice string
		want   MediaCategory
		ok     bool
	}{
		{"1", CategoryImage, true},
		{"2", CategoryVideo, true},
		{"3", CategoryPDF, true},
		{"4", CategoryZip, true},
		{"5", CategoryAll, true},
		{"0", CategoryNone, false},
		{"6", CategoryNone, false},
		{"", CategoryNone, false},
		{"abc", CategoryNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			got, ok := ParseCategory(tt.choice)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, %v)", tt.choice, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMediaCategory_Folder(t *testing.T) {
	tests := []struct {
		cat  MediaCategory
		want string
	}{
		{CategoryImage, "images"},
		{CategoryVideo, "videos"},
		{CategoryPDF, "pdfs"},
		{CategoryZip, "zips"},
		{CategoryAll, "all_media"},
		{CategoryNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			if got := tt.cat.Folder(); got != tt.want {
				t.Errorf("Folder() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMediaCategory_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter MediaCategory
		got    MediaCategory
		want   bool
	}{
		{"image matches image", CategoryImage, CategoryImage, true},
		{"image rejects video", CategoryImage, CategoryVideo, false},
		{"all accepts pdf", CategoryAll, CategoryPDF, true},
		{"all accepts zip", CategoryAll, CategoryZip, true},
		{"all rejects none", CategoryAll, CategoryNone, false},
		{"pdf rejects none", CategoryPDF, CategoryNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.got); got != tt.want {
				t.Errorf("%v.Matches(%v) = %v, want %v", tt.filter, tt.got, got, tt.want)
			}
		})
	}
}

func TestChannel_InputPeer(t *testing.T) {
	ch := Channel{ID: 1234, AccessHash: 5678, Title: "Test"}
	peer := ch.InputPeer()

	p, ok := peer.(interface {
		GetChannelID() int64
		GetAccessHash() int64
	})
	if !ok {
		t.Fatalf("InputPeer() returned %T, want channel peer", peer)
	}
	if p.GetChannelID() != 1234 || p.GetAccessHash() != 5678 {
		t.Errorf("InputPeer() = (%d, %d), want (1234, 5678)", p.GetChannelID(), p.GetAccessHash())
	}
}

func TestSummary_Total(t *testing.T) {
	s := Summary{Succeeded: 3, Skipped: 2, Failed: 1}
	if s.Total() != 6 {
		t.Errorf("Total() = %d, want 6", s.Total())
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSkipped, "Skipped"},
		{OutcomeSucceeded, "Finished"},
		{OutcomeFailed, "Error"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
