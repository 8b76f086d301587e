/*
Package datastore defines the persistence interface for widgets.

Filter widgets are stored apart from the entities they query. The main
interface is DataStore[T]:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with single-table key templates
  - memory: in-memory implementation, used by tests and static widget configs
*/
package datastore
