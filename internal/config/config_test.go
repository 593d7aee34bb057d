package config_test

import (
	"fmt"
	"log"
	"testing"

	"github.com/iVbk/khmerlink/internal/config"
	"github.com/stretchr/testify/require"
)

func ExampleNetAddress_Set() {
	addr := config.NewNetAddress()

	err := addr.Set("example.com:8080")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(addr.String()) // Output: example.com:8080
}

func TestNetAddress_SetStripsScheme(t *testing.T) {
	addr := config.NewNetAddress()

	require.NoError(t, addr.Set("http://example.com:8080"))
	require.Equal(t, "example.com:8080", addr.String())

	require.NoError(t, addr.Set("https://example.com:443"))
	require.Equal(t, "example.com:443", addr.String())
}

func TestNetAddress_SetEmptyHost(t *testing.T) {
	addr := config.NewNetAddress()

	require.NoError(t, addr.Set(":9090"))
	require.Equal(t, "0.0.0.0:9090", addr.String())
}

func TestNetAddress_SetInvalid(t *testing.T) {
	addr := config.NewNetAddress()

	cases := []struct {
		input string
	}{
		{input: "invalid"},
		{input: "example.com"},
		{input: "example.com:NaN"},
		{input: "example.com:8080:8080"},
		{input: "example.com:8080:8080:8080"},
	}

	for _, c := range cases {
		err := addr.Set(c.input)
		require.Error(t, err, "invalid address produces no error")
	}
}

func TestEnabled_Set(t *testing.T) {
	var e config.Enabled

	for _, v := range []string{"true", "1", "t", "T", "TRUE", "True"} {
		require.NoError(t, e.Set(v))
		require.True(t, bool(e))
	}
	for _, v := range []string{"false", "0", "f", "F", "FALSE", "False"} {
		require.NoError(t, e.Set(v))
		require.False(t, bool(e))
	}

	require.Error(t, e.Set("yes"))
	require.Error(t, e.Set(""))
}
