package ipc

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEncoderJoinsArgsAndAppendsCWD(t *testing.T) {
	payload, err := TextEncoder{}.Encode(Invocation{
		Args: []string{"zos-files", "list", "ds", "IBMUSER.*"},
		Dir:  "/home/ibmuser/project",
	})
	require.NoError(t, err)
	assert.Equal(t, "zos-files list ds IBMUSER.* --cwd /home/ibmuser/project/", string(payload))
}

func TestTextEncoderEmptyArgs(t *testing.T) {
	payload, err := TextEncoder{}.Encode(Invocation{Dir: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, " --cwd /tmp/", string(payload))
	assert.NotEmpty(t, payload)
}

func TestTextEncoderDoesNotDoubleTrailingSeparator(t *testing.T) {
	for dir, want := range map[string]string{
		"/":          "x --cwd /",
		"/srv/":      "x --cwd /srv/",
		`C:\Users\z`: `x --cwd C:\Users\z/`,
		`C:\`:        `x --cwd C:\`,
	} {
		payload, err := TextEncoder{}.Encode(Invocation{Args: []string{"x"}, Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, want, string(payload), "dir %q", dir)
	}
}

func TestTextEncoderIgnoresEnv(t *testing.T) {
	payload, err := TextEncoder{}.Encode(Invocation{Args: []string{"a"}, Dir: "/d", Env: map[string]string{"ZOWE_EDITOR": "nano"}})
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "nano")
}

func TestJSONEncoderCarriesEnv(t *testing.T) {
	payload, err := JSONEncoder{}.Encode(Invocation{
		Args: []string{"config", "edit"},
		Dir:  "/work",
		Env:  map[string]string{"ZOWE_EDITOR": "nano"},
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, []any{"config", "edit"}, got["argv"])
	assert.Equal(t, "/work/", got["cwd"])
	assert.Equal(t, map[string]any{"ZOWE_EDITOR": "nano"}, got["env"])
}

func TestJSONEncoderEmptyInvocation(t *testing.T) {
	payload, err := JSONEncoder{}.Encode(Invocation{Dir: "/"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"argv":[],"cwd":"/","stdinLength":0,"stdin":null}`, string(payload))
}

func TestJSONEncoderAppendsStdinAfterFormFeed(t *testing.T) {
	stdin := make([]byte, 256)
	for i := range stdin {
		stdin[i] = byte(i)
	}
	payload, err := JSONEncoder{}.Encode(Invocation{Args: []string{"feed", "cat"}, Dir: "/w", Stdin: stdin})
	require.NoError(t, err)

	header, body, found := bytes.Cut(payload, []byte{'\f'})
	require.True(t, found)
	assert.JSONEq(t, `{"argv":["feed","cat"],"cwd":"/w/","stdinLength":256,"stdin":null}`, string(header))
	assert.Equal(t, stdin, body)
}

func TestTextEncoderIgnoresStdin(t *testing.T) {
	payload, err := TextEncoder{}.Encode(Invocation{Args: []string{"a"}, Dir: "/d", Stdin: []byte("piped")})
	require.NoError(t, err)
	assert.Equal(t, "a --cwd /d/", string(payload))
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder("")
	require.NoError(t, err)
	assert.IsType(t, TextEncoder{}, enc)

	enc, err = NewEncoder(" JSON ")
	require.NoError(t, err)
	assert.IsType(t, JSONEncoder{}, enc)

	_, err = NewEncoder("protobuf")
	require.Error(t, err)
}

func TestEnsureNonEmpty(t *testing.T) {
	assert.Equal(t, []byte(" "), ensureNonEmpty(nil))
	assert.Equal(t, []byte(" "), ensureNonEmpty([]byte{}))
	assert.Equal(t, []byte("x"), ensureNonEmpty([]byte("x")))
}
