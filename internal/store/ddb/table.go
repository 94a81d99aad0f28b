package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const SClient = "CLIENT"

func pkClient(id string) string { return fmt.Sprintf("%s#%s", SClient, id) }
func skDocument() string        { return "DOCUMENT" }

func parseClientID(pk string) (string, error) {
	var id string
	_, err := fmt.Sscanf(pk, "CLIENT#%s", &id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func createTableIfNotExists(client *dynamodb.Client, table string) {
	_, err := client.CreateTable(context.Background(), &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: awsString("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: awsString("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: awsString("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: awsString("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errors.As(err, &re) {
		log.Fatalf("Failed to create table %s: %v", table, err)
	}
}

func awsString(s string) *string { return &s }
func awsBool(b bool) *bool       { return &b }
