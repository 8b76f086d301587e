/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	wferrors "github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

// EntityTypeAttribute is injected into every stored item.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client used by the datastore.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// Config holds the connection settings of a DynamoDB datastore.
// Empty credentials fall back to the default AWS credential chain.
type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	TableName string
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint string
}

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
type DynamodbDataStore[T any] struct {
	client    API
	tableName string
	logger    *slog.Logger
	now       func() time.Time
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

func marshalMap(in any) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(in, func(o *attributevalue.EncoderOptions) {
		o.UseEncodingMarshalers = true
	})
}

func unmarshalMap(item map[string]types.AttributeValue, out any) error {
	return attributevalue.UnmarshalMapWithOptions(item, out, func(o *attributevalue.DecoderOptions) {
		o.UseEncodingUnmarshalers = true
	})
}

// attributeString renders scalar attribute values for key templates.
func attributeString(val types.AttributeValue) string {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		// NULL, binary, sets and documents do not take part in keys
		return ""
	}
}

func expandMacros(indexMap registry.IndexMap, keysInput any) (map[string]string, error) {
	av, err := marshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}
			return attributeString(val)
		})
	}
	return res, nil
}

// expandStringKey replaces every macro of the index map templates with key.
func expandStringKey(indexMap registry.IndexMap, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the primary key from expanded PK and SK values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, sk := expanded["PK"], expanded["SK"]
	if pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// NewDynamoDBClient initializes a DynamoDB client.
func NewDynamoDBClient(ctx context.Context, cfg Config) (*sdk.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore connects to DynamoDB and constructs a datastore for type T.
func NewDynamodbDataStore[T any](ctx context.Context, cfg Config, logger *slog.Logger) (*DynamodbDataStore[T], error) {
	if cfg.TableName == "" {
		return nil, wferrors.NewValidationError("tableName", "DynamoDB table name is required")
	}
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("DynamoDB datastore initialized",
		slog.String("table", cfg.TableName),
		slog.String("region", cfg.Region),
	)
	return NewWithClient[T](client, cfg.TableName, logger), nil
}

// NewWithClient constructs a datastore over an existing client.
func NewWithClient[T any](client API, tableName string, logger *slog.Logger) *DynamodbDataStore[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamodbDataStore[T]{client: client, tableName: tableName, logger: logger, now: time.Now}
}

func entityTypeName[T any]() string {
	var zero T
	return reflect.TypeOf(zero).Name()
}

func indexMapFor[T any]() (registry.IndexMap, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", wferrors.ErrNoIndexMap, entityTypeName[T]())
	}
	return indexMap, nil
}

func (d *DynamodbDataStore[T]) keyFor(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}
	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}
	return keyMap, nil
}

// GetOne retrieves a single item by its string key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, wferrors.NewNotFoundError(entityTypeName[T](), key)
	}

	result := new(T)
	if err := unmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores entity, populating PK, SK and GSI keys from the index map templates.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return err
	}

	if ts, ok := any(&entity).(storagemodels.Timestamped); ok {
		ts.Touch(d.now())
	}

	av, err := marshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return wferrors.NewValidationError("key", err.Error())
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: entityTypeName[T]()}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.DebugContext(ctx, "stored item", slog.String("PK", expanded["PK"]))
	return nil
}

// Delete removes an item by its string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}
