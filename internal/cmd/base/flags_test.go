package base

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagSet_Help(t *testing.T) {
	var (
		config string
		keys   bool
	)
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&config, "config", "", "Path to a configuration file")
	f.StringVar(&config, "format", "json", "Output format")
	f.BoolVar(&keys, "keys", false, "Only print keys")

	assert.Equal(t, `

Options:

  -config
      Path to a configuration file

  -format=json
      Output format

  -keys
      Only print keys
`, f.Help())
}

func TestFlagSet_Help_NoFlags(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	assert.Empty(t, f.Help())
}

func TestFlagSet_ParseError(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	assert.Error(t, f.Parse([]string{"-unknown"}))
}
