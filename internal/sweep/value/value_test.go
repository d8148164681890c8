package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Value
	}{
		{"true", OfBool(true)},
		{"FALSE", OfBool(false)},
		{"True", OfBool(true)},
		{"42", OfInt(42)},
		{"-7", OfInt(-7)},
		{" 12 ", OfInt(12)},
		{"3.14", OfFloat(3.14)},
		{"1e3", OfFloat(1000)},
		{"abc", OfString("abc")},
		{"", OfString("")},
		{"a.gset", OfString("a.gset")},
		{"5-00:00:00", OfString("5-00:00:00")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.True(t, tt.want.Equal(got), "Parse(%q) = %#v, want %#v", tt.raw, got, tt.want)
		})
	}
}

func TestOf(t *testing.T) {
	t.Run("typed values pass through", func(t *testing.T) {
		for _, v := range []Value{OfBool(false), OfInt(3), OfFloat(2.5), OfString("x")} {
			got, err := Of(v)
			require.NoError(t, err)
			assert.True(t, v.Equal(got))
		}
	})

	t.Run("natives keep their kind", func(t *testing.T) {
		b, err := Of(true)
		require.NoError(t, err)
		assert.Equal(t, Bool, b.Kind())

		i, err := Of(7)
		require.NoError(t, err)
		assert.Equal(t, Int, i.Kind())

		f, err := Of(float32(1.5))
		require.NoError(t, err)
		assert.Equal(t, Float, f.Kind())
	})

	t.Run("strings are parsed", func(t *testing.T) {
		v, err := Of("20000")
		require.NoError(t, err)
		n, ok := v.AsInt()
		assert.True(t, ok)
		assert.Equal(t, int64(20000), n)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Of([]int{1})
		assert.Error(t, err)
	})

	t.Run("uint64 overflow", func(t *testing.T) {
		_, err := Of(uint64(math.MaxUint64))
		assert.Error(t, err)
	})
}

func TestParseIsStableOnRenderedValues(t *testing.T) {
	for _, v := range []Value{OfBool(true), OfInt(-12), OfFloat(2), OfFloat(0.1), OfFloat(1e20), OfString("x")} {
		assert.True(t, v.Equal(Parse(v.String())), "round trip of %#v", v)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "true", OfBool(true).String())
	assert.Equal(t, "42", OfInt(42).String())
	assert.Equal(t, "2.0", OfFloat(2).String())
	assert.Equal(t, "3.14", OfFloat(3.14).String())
	assert.Equal(t, "1e+20", OfFloat(1e20).String())
	assert.Equal(t, "abc", OfString("abc").String())
}

func TestText(t *testing.T) {
	t.Run("parsed values keep their source text", func(t *testing.T) {
		v := Parse("0100")
		n, ok := v.AsInt()
		require.True(t, ok)
		assert.Equal(t, int64(100), n)
		assert.Equal(t, "100", v.String())
		assert.Equal(t, "0100", v.Text())
		assert.Equal(t, "1.50", Parse("1.50").Text())
	})

	t.Run("constructed values fall back to String", func(t *testing.T) {
		assert.Equal(t, "12", OfInt(12).Text())
		assert.Equal(t, "2.0", OfFloat(2).Text())
	})

	t.Run("source text does not affect equality", func(t *testing.T) {
		assert.True(t, OfInt(100).Equal(Parse("0100")))
	})

	t.Run("yaml scalars keep their source text", func(t *testing.T) {
		var got struct {
			Plain  Value `yaml:"plain"`
			Quoted Value `yaml:"quoted"`
			Empty  Value `yaml:"empty"`
		}
		require.NoError(t, yaml.Unmarshal([]byte("plain: 1.50\nquoted: \"0100\"\nempty: ~\n"), &got))
		assert.Equal(t, "1.50", got.Plain.Text())
		assert.Equal(t, "0100", got.Quoted.Text())
		assert.Equal(t, "", got.Empty.Text())
	})
}

func TestAsFloat(t *testing.T) {
	f, ok := OfInt(4).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	_, ok = OfString("4").AsFloat()
	assert.False(t, ok)
}

func TestUnmarshalYAML(t *testing.T) {
	var doc struct {
		Quoted Value `yaml:"quoted"`
		Plain  Value `yaml:"plain"`
		Flag   Value `yaml:"flag"`
		Ratio  Value `yaml:"ratio"`
		Name   Value `yaml:"name"`
	}
	src := `
quoted: "20000"
plain: 3
flag: false
ratio: 0.5
name: erdos_renyi
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	assert.True(t, OfInt(20000).Equal(doc.Quoted))
	assert.True(t, OfInt(3).Equal(doc.Plain))
	assert.True(t, OfBool(false).Equal(doc.Flag))
	assert.True(t, OfFloat(0.5).Equal(doc.Ratio))
	assert.True(t, OfString("erdos_renyi").Equal(doc.Name))
}

func TestUnmarshalYAML_RejectsSequences(t *testing.T) {
	var v Value
	err := yaml.Unmarshal([]byte(`[1, 2]`), &v)
	assert.Error(t, err)
}
