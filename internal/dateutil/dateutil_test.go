package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2023, time.March, 7, 9, 5, 30, 0, time.UTC)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "YYYY", format: "YYYY", want: "2006"},
		{name: "YY", format: "YY", want: "06"},
		{name: "MMMM", format: "MMMM", want: "January"},
		{name: "MMM", format: "MMM", want: "Jan"},
		{name: "MM", format: "MM", want: "01"},
		{name: "M", format: "M", want: "1"},
		{name: "DD", format: "DD", want: "02"},
		{name: "D", format: "D", want: "2"},
		{name: "hour and minute", format: "HH:mm:ss", want: "15:04:05"},
		{name: "ISO date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "month vs minute case", format: "MM mm", want: "01 04"},
		{name: "bracket literal", format: "[Date]: YYYY", want: "Date: 2006"},
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "default tistory label", format: DefaultLabelFormat, want: "(23.03.07 09:05)에 작성된 글 입니다."},
		{name: "tistory preset", format: "TISTORY", want: "(23.03.07 09:05)에 작성된 글 입니다."},
		{name: "strftime iso", format: "%Y-%m-%d", want: "2023-03-07"},
		{name: "token layout", format: "YYYY.MM.DD HH:mm", want: "2023.03.07 09:05"},
		{name: "iso preset", format: "iso", want: "2023-03-07"},
		{name: "long preset", format: "long", want: "March 7, 2023"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FormatLabel(tt.format, fixedTime)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FormatLabel(%q) error = %v, want %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("FormatLabel(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "passthrough literal", value: "2020-01-01", want: "2020-01-01"},
		{name: "empty passthrough", value: "", want: ""},
		{name: "auto", value: "auto", want: "2023-03-07"},
		{name: "auto uppercase", value: "AUTO", want: "2023-03-07"},
		{name: "auto token format", value: "auto:DD/MM/YYYY", want: "07/03/2023"},
		{name: "auto strftime format", value: "auto:%H시 %M분", want: "09시 05분"},
		{name: "auto preset", value: "auto:us", want: "03/07/2023"},
		{name: "auto empty format", value: "auto:", wantErr: ErrInvalidDateFormat},
		{name: "auto bad syntax", value: "automatic", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixedTime)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolveDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
