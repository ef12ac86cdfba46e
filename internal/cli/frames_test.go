package cli

import (
	"reflect"
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
)

func TestParseFrameIndices(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []int
	}{
		{"empty means all", "", nil},
		{"single", "3", []int{3}},
		{"list", "0,2,5", []int{0, 2, 5}},
		{"range", "4-7", []int{4, 5, 6, 7}},
		{"mixed", "0,5,10-12", []int{0, 5, 10, 11, 12}},
		{"duplicates collapse", "1,1,1-2", []int{1, 2}},
		{"unordered input sorts", "9,3,6", []int{3, 6, 9}},
		{"spaces tolerated", " 1 , 3 - 4 ", []int{1, 3, 4}},
		{"single-element range", "5-5", []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameIndices(tt.spec)
			if err != nil {
				t.Fatalf("ParseFrameIndices(%q): %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFrameIndices(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseFrameIndicesErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"garbage", "abc"},
		{"descending range", "7-4"},
		{"negative", "-3"},
		{"garbage in range", "1-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrameIndices(tt.spec)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ParseFrameIndices(%q) error = %v, want INVALID_INPUT", tt.spec, err)
			}
		})
	}
}
