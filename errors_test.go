package monument

import (
	"errors"
	"io/fs"
	"testing"
)

func TestError_IsKindAndCause(t *testing.T) {
	err := NewError(ErrDatasetFetch, "fetch names.json", fs.ErrNotExist)

	if !errors.Is(err, ErrDatasetFetch) {
		t.Error("errors.Is(err, ErrDatasetFetch) = false")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if errors.Is(err, ErrDatasetParse) {
		t.Error("error matched an unrelated kind")
	}
	if got := KindOf(err); got != ErrDatasetFetch {
		t.Errorf("KindOf() = %v, want %v", got, ErrDatasetFetch)
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: ErrPartition}, "monument: partition failed"},
		{"with op", &Error{Kind: ErrPartition, Op: "partition"}, "monument: partition failed: partition"},
		{
			"with cause",
			&Error{Kind: ErrFontDecode, Op: "decode", Err: errors.New("bad magic")},
			"monument: font decode failed: decode: bad magic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf_Plain(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != nil {
		t.Errorf("KindOf(plain) = %v, want nil", got)
	}
}
