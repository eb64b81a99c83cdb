package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIdentity(t *testing.T) {
	m := Default()
	assert.Equal(t, "network-monitor", m.Name)
	assert.Equal(t, "0.1.0", m.Version)
	assert.Equal(t, []string{"cmake_find_package"}, m.Generators)
	require.NoError(t, m.Validate())
}

func TestDefaultRequirementsPinned(t *testing.T) {
	m := Default()
	want := []string{
		"boost/1.74.0",
		"openssl/1.1.1i",
		"libcurl/7.74.0",
		"nlohmann_json/3.9.1",
		"spdlog/1.8.5",
	}
	require.Len(t, m.Requires, 5)
	for i, r := range m.Requires {
		assert.Equal(t, want[i], r.String())
	}
	r, ok := m.Requirement("openssl")
	require.True(t, ok)
	assert.Equal(t, "1.1.1i", r.Version)
}

func TestDefaultBoostStatic(t *testing.T) {
	m := Default()
	require.Len(t, m.DefaultOptions, 1)
	assert.Equal(t, "boost:shared=False", m.DefaultOptions[0].String())
	assert.True(t, m.IsStatic("boost"))
	assert.False(t, m.IsStatic("openssl"))
}

func TestDefaultReturnsCopy(t *testing.T) {
	m := Default()
	m.Requires[0].Version = "9.9.9"
	assert.Equal(t, "1.74.0", Default().Requires[0].Version)
}

func TestParseRequirement(t *testing.T) {
	r, err := ParseRequirement("boost/1.74.0")
	require.NoError(t, err)
	assert.Equal(t, Requirement{Name: "boost", Version: "1.74.0"}, r)

	for _, bad := range []string{"", "boost", "/1.0", "boost/"} {
		_, err := ParseRequirement(bad)
		assert.ErrorIs(t, err, ErrMalformedReq, bad)
	}
}

func TestParseOption(t *testing.T) {
	o, err := ParseOption("boost:shared=False")
	require.NoError(t, err)
	assert.Equal(t, Option{Package: "boost", Key: "shared", Value: "False"}, o)

	for _, bad := range []string{"", "boost", "boost:shared", ":shared=False", "boost:=False", "boost:shared="} {
		_, err := ParseOption(bad)
		assert.ErrorIs(t, err, ErrMalformedOption, bad)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Manifest)
		want   error
	}{
		{"empty name", func(m *Manifest) { m.Name = "" }, ErrEmptyName},
		{"empty version", func(m *Manifest) { m.Version = " " }, ErrEmptyVersion},
		{"no generator", func(m *Manifest) { m.Generators = nil }, ErrNoGenerator},
		{"range", func(m *Manifest) { m.Requires[1].Version = ">=1.1.1" }, ErrNotPinned},
		{"conan range", func(m *Manifest) { m.Requires[1].Version = "[>1.0 <2.0]" }, ErrNotPinned},
		{"wildcard", func(m *Manifest) { m.Requires[2].Version = "7.*" }, ErrNotPinned},
		{"duplicate", func(m *Manifest) { m.Requires = append(m.Requires, Requirement{Name: "boost", Version: "1.75.0"}) }, ErrDuplicate},
		{"unknown option package", func(m *Manifest) { m.DefaultOptions[0].Package = "zlib" }, ErrUnknownPackage},
		{"empty option value", func(m *Manifest) { m.DefaultOptions[0].Value = "" }, ErrMalformedOption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Default()
			tc.mutate(&m)
			err := m.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestEncodeFormats(t *testing.T) {
	m := Default()

	var jb bytes.Buffer
	require.NoError(t, Encode(&jb, m, "json"))
	var fromJSON Manifest
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	assert.Equal(t, m, fromJSON)

	var yb bytes.Buffer
	require.NoError(t, Encode(&yb, m, "yaml"))
	var fromYAML Manifest
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	assert.Equal(t, m, fromYAML)

	var tb bytes.Buffer
	require.NoError(t, Encode(&tb, m, "toml"))
	var fromTOML Manifest
	require.NoError(t, toml.Unmarshal(tb.Bytes(), &fromTOML))
	assert.Equal(t, m, fromTOML)

	assert.Error(t, Encode(&bytes.Buffer{}, m, "xml"))
}
