package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestISO88591(t *testing.T) {
	e := Load("iso-8859-1")
	require.NotNil(t, e)
	dec := e.NewDecoder()
	enc := e.NewEncoder()
	for i := 0x20; i <= 0x7e; i++ {
		v := string([]byte{byte(i)})
		s, err := dec.String(v)
		require.NoError(t, err)
		require.Equal(t, v, s)

		v1, err := enc.String(s)
		require.NoError(t, err)
		require.Equal(t, v, v1)
	}

	s, err := dec.String("\xe9")
	require.NoError(t, err)
	require.Equal(t, "é", s)
}

func TestLoadUnknown(t *testing.T) {
	require.Nil(t, Load("no-such-charset"))
}

func TestDetectBOM(t *testing.T) {
	testcases := []struct {
		input []byte
		name  string
		size  int
	}{
		{input: []byte("\xEF\xBB\xBF<a/>"), name: "utf-8", size: 3},
		{input: []byte("\xFE\xFF\x00<"), name: "utf-16be", size: 2},
		{input: []byte("\xFF\xFE<\x00"), name: "utf-16le", size: 2},
		{input: []byte("<a/>"), name: "", size: 0},
	}
	for _, tc := range testcases {
		name, size := DetectBOM(tc.input)
		require.Equal(t, tc.name, name)
		require.Equal(t, tc.size, size)
	}
}

func TestDecode(t *testing.T) {
	t.Run("UTF-8 with BOM", func(t *testing.T) {
		out, err := Decode("", []byte("\xEF\xBB\xBFhello"))
		require.NoError(t, err)
		require.Equal(t, "hello", string(out))
	})
	t.Run("UTF-16LE with BOM", func(t *testing.T) {
		out, err := Decode("", []byte("\xFF\xFEh\x00i\x00"))
		require.NoError(t, err)
		require.Equal(t, "hi", string(out))
	})
	t.Run("EUC-JP", func(t *testing.T) {
		// "日本" in EUC-JP
		out, err := Decode("euc-jp", []byte{0xC6, 0xFC, 0xCB, 0xDC})
		require.NoError(t, err)
		require.Equal(t, "日本", string(out))
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := Decode("klingon", []byte("abc"))
		require.ErrorIs(t, err, ErrUnknownEncoding)
	})
}
