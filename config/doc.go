/*
Package config loads the configuration of a widget filter service.

Settings come from a YAML file, then from the environment (a .env file in
the working directory is loaded first when present):

	database:
	  driver: sqlite
	  dsn: catalog.db
	widgets:
	  backend: dynamodb
	  table: widgets
	  region: eu-west-1
	entities:
	  - type: App\Entity\Product
	    table: product
	    columns: [name, price]
	log:
	  level: debug

WIDGETFILTER_DSN, DDB_WIDGET_TABLE, AWS_REGION and the other Env constants
override the matching file settings.
*/
package config
