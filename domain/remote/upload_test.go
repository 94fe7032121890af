package remote

import "testing"

func TestMimeTypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/work/clip_trimmed.mp4", MimeTypeMP4},
		{"/tmp/work/clip_trimmed.aac", MimeTypeAAC},
		{"/tmp/work/clip_trimmed.mp3", MimeTypeMP3},
		{"/tmp/work/CLIP.MP4", MimeTypeMP4},
		{"/tmp/work/notes.txt", ""},
		{"/tmp/work/noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MimeTypeForPath(tt.path); got != tt.want {
				t.Errorf("MimeTypeForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
