package version

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantErr  bool
	}{
		{name: "plain decimal", input: "13.0", wantText: "13.0"},
		{name: "minor version", input: "13.4", wantText: "13.4"},
		{name: "integer", input: "13", wantText: "13"},
		{name: "surrounding whitespace", input: "\t13.5\n", wantText: "13.5"},
		{name: "empty", input: "", wantErr: true},
		{name: "only spaces", input: "   ", wantErr: true},
		{name: "word", input: "tion", wantErr: true},
		{name: "exponent", input: "1e3", wantErr: true},
		{name: "markup suffix", input: "13.5</a>", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, got.String())
		})
	}
}

func TestVersion_Cmp(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  int
	}{
		{name: "trailing zeros are equal", left: "13.0", right: "13.00", want: 0},
		{name: "13.10 equals 13.1", left: "13.10", right: "13.1", want: 0},
		{name: "integer equals decimal", left: "13", right: "13.0", want: 0},
		{name: "less", left: "13.0", right: "13.5", want: -1},
		{name: "greater", left: "13.5", right: "13.0", want: 1},
		{name: "13.10 is less than 13.2", left: "13.10", right: "13.2", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := MustParse(tt.left), MustParse(tt.right)
			assert.Equal(t, tt.want, left.Cmp(right))
			assert.Equal(t, -tt.want, right.Cmp(left))
			assert.Equal(t, tt.want == 0, left.Equal(right))
			assert.Equal(t, tt.want < 0, left.LessThan(right))
		})
	}
}

func TestVersion_Ceiling(t *testing.T) {
	assert.True(t, decimal.RequireFromString("14.0").Equal(MustParse("13.0").Ceiling()))
	assert.True(t, decimal.RequireFromString("13.5").Equal(MustParse("12.5").Ceiling()))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a version") })
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    Kind
	}{
		{name: "same patch", current: "13.0", latest: "13.0", want: KindUpToDate},
		{name: "same patch, different formatting", current: "13.0", latest: "13.00", want: KindUpToDate},
		{name: "newer patch available", current: "13.0", latest: "13.5", want: KindUpdateAvailable},
		{name: "installed newer than advertised", current: "13.5", latest: "13.0", want: KindAnomaly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(MustParse(tt.current), MustParse(tt.latest))
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.current, got.Current.String())
			assert.Equal(t, tt.latest, got.Latest.String())
		})
	}
}
