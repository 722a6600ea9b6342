package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Method string
	Status string
}

var rowColumns = []Column{
	{Name: "Method", Key: "Method"},
	{Name: "Status", Key: "Status"},
}

func TestPlainFormatterPrintList(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("plain", &out, &errOut)

	require.NoError(t, f.PrintList([]row{{"GET", "200"}, {"POST", "ERROR"}}, rowColumns))
	assert.Equal(t, "Method\tStatus\nGET\t200\nPOST\tERROR\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPlainFormatterPrintListMaps(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("plain", &out, &out)

	items := []map[string]string{{"Method": "PUT", "Status": "204"}}
	require.NoError(t, f.PrintList(items, rowColumns))
	assert.Equal(t, "Method\tStatus\nPUT\t204\n", out.String())
}

func TestPrintListRequiresSlice(t *testing.T) {
	for _, mode := range []string{"plain", "rich"} {
		var out bytes.Buffer
		f := NewWithWriters(mode, &out, &out)
		assert.Error(t, f.PrintList(row{}, rowColumns), mode)
	}
}

func TestJSONFormatterPrintList(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("json", &out, &out)

	require.NoError(t, f.PrintList([]row{{"GET", "200"}}, rowColumns))

	var envelope struct {
		Data  []row `json:"data"`
		Count int   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Count)
	assert.Equal(t, "GET", envelope.Data[0].Method)
}

func TestJSONFormatterMessagesGoToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("json", &out, &errOut)

	f.PrintError(errors.New("boom"))
	f.PrintWarning("careful")
	f.PrintHint("ignored")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"error": "boom"`)
	assert.Contains(t, errOut.String(), `"warning": "careful"`)
	assert.NotContains(t, errOut.String(), "ignored")
}

func TestPlainFormatterPrintStruct(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("plain", &out, &out)

	require.NoError(t, f.Print(row{Method: "HEAD", Status: "200"}))
	assert.Equal(t, "Method\tHEAD\nStatus\t200\n", out.String())
}

func TestUnknownModeFallsBackToPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("fancy", &out, &errOut)

	f.PrintWarning("x")
	assert.Equal(t, "warning: x\n", errOut.String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, false, false).Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	NewLogger(&buf, true, false).Debugf("shown %d", 2)
	assert.Equal(t, "debug: shown 2\n", buf.String())

	var nilLogger *Logger
	assert.False(t, nilLogger.Enabled())
	nilLogger.Debugf("no panic")
}
