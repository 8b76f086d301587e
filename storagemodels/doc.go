/*
Package storagemodels defines the data structures used throughout widgetfilter.

Key Types:

Widget and Listing:
A filter widget embeds the configuration of the listing it filters:

	w := &Widget{
	    ID:   "42",
	    Kind: KindFilter,
	    Listing: &Listing{
	        Mode:           ModeQuery,
	        BusinessEntity: `App\Entity\Product`,
	        Query:          "WHERE item.price > :minPrice",
	        OrderBy:        `[{"by":"price","order":"DESC"}]`,
	    },
	}

QueryParams:
Parameters for querying the widget store:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "WIDGET#42"},
	    },
	}
*/
package storagemodels
