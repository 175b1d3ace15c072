package audio

import "testing"

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"meeting.mp3", true},
		{"meeting.MP3", true},
		{"meeting.wav", true},
		{"meeting.m4a", true},
		{"dir/meeting.Wav", true},
		{"meeting.txt", false},
		{"meeting.mp4", false},
		{"meeting", false},
		{"", false},
		{".mp3", true},
		{"meeting.mp3.txt", false},
	}

	for _, tt := range tests {
		if got := IsSupportedFormat(tt.filename); got != tt.want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormatErrorMessage(t *testing.T) {
	if FormatErrorMessage() == "" {
		t.Error("FormatErrorMessage should not be empty")
	}
}
