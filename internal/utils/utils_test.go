package utils

import (
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandData struct {
	Manifest string
	Service  string
	Lines    int
}

func TestGetCommandLine(t *testing.T) {
	data := commandData{Manifest: "/home/u/.simpleclaw-desktop/openclaw/docker-compose.yml", Service: "openclaw", Lines: 100}

	cmd, args, err := GetCommandLine("docker", []string{"compose", "-f", "{{.Manifest}}", "logs", "--tail={{.Lines}}", "{{.Service}}"}, data)
	require.NoError(t, err)
	assert.Equal(t, "docker", cmd)
	assert.Equal(t, []string{"compose", "-f", data.Manifest, "logs", "--tail=100", "openclaw"}, args)
}

func TestGetCommandLineKeepsJSONArguments(t *testing.T) {
	raw := `{"mode": "cache-ttl", "ttl": "1h", "keepLastAssistants": 3}`
	_, args, err := GetCommandLine("docker", []string{"config", "set", "agents.defaults.contextPruning", raw}, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, args[3])

	_, args, err = GetCommandLine("docker", []string{`ps --format {{"{{"}}.Name{{"}}"}}`}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ps --format {{.Name}}", args[0])
}

func TestGetCommandLineMissingField(t *testing.T) {
	_, _, err := GetCommandLine("docker", []string{"{{.Unknown}}"}, commandData{})
	assert.Error(t, err)
}

func TestVersionNumbers(t *testing.T) {
	v := ExtractVersionNumber("Docker version 27.3.1, build ce12230")
	require.NotNil(t, v)
	assert.Equal(t, "27.3.1", v.String())

	v = ExtractVersionNumber("Docker Compose version v2.29.7-desktop.1")
	require.NotNil(t, v)
	assert.Equal(t, VersionNumber{Major: 2, Minor: 29, Micro: 7}, *v)

	assert.Nil(t, ExtractVersionNumber("command not found"))
	assert.Nil(t, ParseVersionNumber("1.2"))
	assert.Less(t, CompareVersion(VersionNumber{1, 9, 0}, VersionNumber{1, 10, 0}), 0)
	assert.Zero(t, CompareVersion(*ParseVersionNumber("v2.0.1"), VersionNumber{2, 0, 1}))
}

func TestStructToOrderedMap(t *testing.T) {
	type row struct {
		Name   string `json:"name"`
		State  string `json:"state"`
		Status string `json:"status"`
	}
	m, err := StructToOrderedMap(row{Name: "openclaw", State: "running", Status: "Up 2 minutes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "state", "status"}, m.Keys())

	out := RenderTable([]*orderedmap.OrderedMap{m})
	assert.Contains(t, out, "openclaw")
	assert.Contains(t, out, "Up 2 minutes")
	assert.Empty(t, RenderTable(nil))
}
