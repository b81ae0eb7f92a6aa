package store

import (
	"testing"

	"github.com/aaronzipp/rps/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		data string
		want bool
	}{
		{"empty object", `{}`, true},
		{"complete record", `{"p":{"ties":1,"wins":1,"games":2,"rock":1,"paper":0,"scissors":1}}`, true},
		{"extra fields", `{"p":{"ties":0,"wins":0,"games":0,"rock":0,"paper":0,"scissors":0,"streak":3}}`, true},
		{"missing fields", `{"p":{"games":2}}`, false},
		{"value not object", `{"player":"1","move":"rock"}`, false},
		{"top level array", `[]`, false},
		{"top level null", `null`, false},
		{"record null", `{"p":null}`, false},
		{"not json", `{`, false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Validate([]byte(tc.data)))
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	h, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, h)
	assert.NotNil(t, h)
}

func TestDecodeRejects(t *testing.T) {
	for _, data := range []string{
		" ",
		"not json",
		`{"p":{"games":2}}`,
		`{"p":{"ties":-1,"wins":0,"games":0,"rock":0,"paper":0,"scissors":0}}`,
		`{"p":{"ties":"x","wins":0,"games":0,"rock":0,"paper":0,"scissors":0}}`,
	} {
		_, err := Decode([]byte(data))
		assert.Error(t, err, "data %q", data)
	}
	_, err := Decode([]byte(`{"p":{"games":2}}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestEncodeDecode(t *testing.T) {
	h := History{"mafaldo": {Wins: 1, Ties: 1, Games: 2, Rock: 1, Scissors: 1}}
	data, err := Encode(h)
	require.NoError(t, err)
	assert.True(t, Validate(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestEncodeUsesFieldNames(t *testing.T) {
	data, err := Encode(History{"a": {}})
	require.NoError(t, err)
	for _, field := range models.StatsFields {
		assert.Contains(t, string(data), `"`+field+`"`)
	}
}
