package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"mcphub/internal/types"
)

func TestKeyLayout(t *testing.T) {
	require.Equal(t, "CLIENT#acme", pkClient("acme"))
	require.Equal(t, "DOCUMENT", skDocument())
}

func TestParseClientID(t *testing.T) {
	id, err := parseClientID("CLIENT#acme")
	require.NoError(t, err)
	require.Equal(t, "acme", id)

	id, err = parseClientID(pkClient("globex"))
	require.NoError(t, err)
	require.Equal(t, "globex", id)

	_, err = parseClientID("ORDER#123")
	require.Error(t, err)

	_, err = parseClientID("CLIENT#")
	require.Error(t, err)
}

func TestDocumentItemRoundTrip(t *testing.T) {
	doc := types.ClientDocument{
		"telegram": {"token": "abc", "chat_id": "42"},
	}
	raw, err := json.Marshal(map[string]map[string]any(doc))
	require.NoError(t, err)

	av, err := attributevalue.MarshalMap(documentItem{
		PK:  pkClient("acme"),
		SK:  skDocument(),
		Doc: raw,
	})
	require.NoError(t, err)

	var item documentItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &item))
	require.Equal(t, "CLIENT#acme", item.PK)
	require.Equal(t, "DOCUMENT", item.SK)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(item.Doc, &got))
	require.Equal(t, "abc", got["telegram"]["token"])
}

func TestDocumentRef(t *testing.T) {
	s := &Store{table: "mcphub_clients"}
	require.Equal(t, "ddb table mcphub_clients item CLIENT#acme", s.DocumentRef("acme"))
}
