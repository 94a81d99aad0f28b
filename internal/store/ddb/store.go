package ddb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goccy/go-json"

	"mcphub/internal/types"
)

// Store keeps client documents in a single DynamoDB table. The document
// body is stored as a JSON blob rather than a native attribute tree so the
// open service/setting mapping round-trips without type surprises.
type Store struct {
	table string
	cli   *dynamodb.Client
}

type documentItem struct {
	PK  string `dynamodbav:"PK"`
	SK  string `dynamodbav:"SK"`
	Doc []byte `dynamodbav:"doc"`
}

func New(table string, cli *dynamodb.Client) *Store {
	// Creates the table only if it doesn't exist.
	// We ignore the error if the table already exists.
	createTableIfNotExists(cli, table)
	return &Store{table: table, cli: cli}
}

func (s *Store) GetClientDocument(ctx context.Context, clientID string) (types.ClientDocument, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkClient(clientID)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skDocument()},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, types.Err(types.ErrStoreAccess, err, "")
	}
	if out.Item == nil {
		return nil, types.Err(types.ErrNotFound, nil, "no document for client %q", clientID)
	}
	var item documentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, types.Err(types.ErrStoreAccess, err, "")
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(item.Doc, &doc); err != nil {
		return nil, types.Err(types.ErrConfigFileInvalid, err, "decode %s", s.DocumentRef(clientID))
	}
	return doc, nil
}

func (s *Store) ListClients(ctx context.Context) ([]string, error) {
	// Single-table layout; documents are the only CLIENT#-prefixed items,
	// so a filtered scan projecting PK is enough at this scale.
	out, err := s.cli.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.table,
		FilterExpression: awsString("begins_with(PK, :pk) AND SK = :sk"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: SClient + "#"},
			":sk": &ddbTypes.AttributeValueMemberS{Value: skDocument()},
		},
		ProjectionExpression: awsString("PK"),
	})
	if err != nil {
		return nil, types.Err(types.ErrStoreAccess, err, "")
	}
	clientIDs := make([]string, 0, len(out.Items))
	for _, item := range out.Items {
		var pk struct {
			PK string `dynamodbav:"PK"`
		}
		if err := attributevalue.UnmarshalMap(item, &pk); err != nil {
			return nil, types.Err(types.ErrStoreAccess, err, "")
		}
		id, err := parseClientID(pk.PK)
		if err != nil {
			continue
		}
		if id != "" {
			clientIDs = append(clientIDs, id)
		}
	}
	sort.Strings(clientIDs)
	return clientIDs, nil
}

func (s *Store) PutClientDocument(ctx context.Context, clientID string, doc types.ClientDocument) error {
	if err := types.ValidateClientID(clientID); err != nil {
		return err
	}
	raw, err := json.Marshal(map[string]map[string]any(doc))
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(documentItem{
		PK:  pkClient(clientID),
		SK:  skDocument(),
		Doc: raw,
	})
	if err != nil {
		return types.Err(types.ErrStoreAccess, err, "")
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      av,
	})
	if err != nil {
		return types.Err(types.ErrStoreAccess, err, "")
	}
	return nil
}

func (s *Store) DeleteClientDocument(ctx context.Context, clientID string) error {
	_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkClient(clientID)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skDocument()},
		},
	})
	if err != nil {
		return types.Err(types.ErrStoreAccess, err, "")
	}
	return nil
}

func (s *Store) DocumentRef(clientID string) string {
	return "ddb table " + s.table + " item " + pkClient(clientID)
}

func (s *Store) ClearAll(ctx context.Context) error {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return err
	}
	for _, id := range clients {
		if err := s.DeleteClientDocument(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
