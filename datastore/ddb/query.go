/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	wferrors "github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/storagemodels"
)

// GSI1 names the secondary index used for listing items by their GSI1PK.
const GSI1 = "GSI1"

// Query performs a query against the datastore's table. params.TableName is
// ignored. Every page is read until LastEvaluatedKey is empty or params.Limit
// items have been collected. Results are *T values.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	if params == nil || params.KeyConditionExpression == "" {
		return nil, wferrors.NewValidationError("keyConditionExpression", "query requires a key condition, use List to read every item")
	}
	input := &dynamodb.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
		ExclusiveStartKey:         params.ExclusiveStartKey,
	}

	var results []interface{}
	for {
		out, err := d.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		for _, item := range out.Items {
			obj := new(T)
			if err := unmarshalMap(item, obj); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, obj)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		if params.Limit != nil && int32(len(results)) >= *params.Limit {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return results, nil
}

// QueryByGSI1PK lists the items whose GSI1PK template expands to value.
// For widgets, QueryByGSI1PK(ctx, "filter") lists every filter widget.
func (d *DynamodbDataStore[T]) QueryByGSI1PK(ctx context.Context, value string) ([]T, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}
	if _, ok := indexMap["GSI1PK"]; !ok {
		return nil, fmt.Errorf("GSI1PK not found in index map")
	}
	pk := expandStringKey(indexMap, value)["GSI1PK"]

	results, err := d.Query(ctx, &storagemodels.QueryParams{
		KeyConditionExpression: "GSI1PK = :pk",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		IndexName: aws.String(GSI1),
	})
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(results))
	for _, r := range results {
		if v, ok := r.(*T); ok {
			typed = append(typed, *v)
		}
	}
	return typed, nil
}

// List scans the table for every item stored as T, identified by its
// EntityType attribute. Every page is read.
func (d *DynamodbDataStore[T]) List(ctx context.Context) ([]T, error) {
	input := &dynamodb.ScanInput{
		TableName:        &d.tableName,
		FilterExpression: aws.String("#et = :et"),
		ExpressionAttributeNames: map[string]string{
			"#et": EntityTypeAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":et": &types.AttributeValueMemberS{Value: entityTypeName[T]()},
		},
	}

	var results []T
	for {
		out, err := d.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		for _, item := range out.Items {
			var obj T
			if err := unmarshalMap(item, &obj); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, obj)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return results, nil
}
