package store

import (
	"testing"

	"listview/internal/model"

	"github.com/stretchr/testify/require"
)

const yamlDoc = `
blocks:
  - clientId: intro
    name: core/heading
    attributes:
      content: Welcome
  - name: core/group
    attributes:
      lock:
        move: true
    innerBlocks:
      - clientId: inner
`

func TestDecodeDocument_YAML(t *testing.T) {
	blocks, err := DecodeDocument("doc.yaml", []byte(yamlDoc))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, "Welcome", blocks[0].Label())
	require.True(t, blocks[1].Locked())
	require.IsType(t, map[string]any{}, blocks[1].Attributes["lock"])
	require.Equal(t, "inner", blocks[1].InnerBlocks[0].ClientID)

	prepared, err := PrepareImport(blocks)
	require.NoError(t, err)
	require.Len(t, prepared[1].ClientID, 36)
	require.Equal(t, "", blocks[1].ClientID, "input is not modified")
}

func TestDecodeDocument_YAMLList(t *testing.T) {
	blocks, err := DecodeDocument("doc.yml", []byte("- clientId: a\n- clientId: b\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, topIDs(blocks))
}

func TestDecodeDocument_JSON(t *testing.T) {
	blocks, err := DecodeDocument("doc.json", []byte(`[{"clientId":"a","innerBlocks":[{"clientId":"a1"}]}]`))
	require.NoError(t, err)
	require.Equal(t, "a1", blocks[0].InnerBlocks[0].ClientID)

	blocks, err = DecodeDocument("doc", []byte(`{"id":"x","blocks":[{"clientId":"b"}]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, topIDs(blocks))

	_, err = DecodeDocument("doc.json", []byte(`{`))
	require.Error(t, err)
}

func TestPrepareImport_RejectsDuplicates(t *testing.T) {
	_, err := PrepareImport([]model.Block{{ClientID: "a"}, {ClientID: "b", InnerBlocks: []model.Block{{ClientID: "a"}}}})
	require.ErrorContains(t, err, "duplicate client id a")

	out, err := PrepareImport(nil)
	require.NoError(t, err)
	require.Equal(t, []model.Block{}, out)
}
