package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EffectiveMode(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeAuto).EffectiveMode(), "a buffer is not a terminal")
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, "").EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&buf, &buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeJSON).EffectiveMode())
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.JSON(map[string]string{"sql": "SELECT 1"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "SELECT 1", got["sql"])
	assert.Contains(t, buf.String(), "\n  \"sql\"")
}

func TestRenderer_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	r.Table([]string{"Name", "Kind"}, [][]any{{"orders.count", "measure"}, {"orders.status", "dimension"}})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "orders.count")
	assert.Contains(t, out, "dimension")
	assert.Contains(t, out, "┌")
}

func TestRenderer_PrintlnAndWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("SELECT", 1)
	r.Warn("skipped %d", 2)

	assert.Equal(t, "SELECT 1\n", out.String())
	assert.Equal(t, "skipped 2\n", errOut.String())
	assert.Same(t, &out, r.Writer())
}
