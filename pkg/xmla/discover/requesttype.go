package discover

import "github.com/getmockd/xmlad/pkg/xmla/enum"

// RequestTypes lists the schema rowsets a Discover RequestType may name.
var RequestTypes = enum.NewSet("RequestType",
	enum.Value{Ordinal: 0, Name: "DISCOVER_DATASOURCES", Description: "Returns a list of XML for Analysis data sources available on the server or Web Service."},
	enum.Value{Ordinal: 1, Name: "DISCOVER_PROPERTIES", Description: "Returns a list of information and values about the requested properties that are supported by the specified data source provider."},
	enum.Value{Ordinal: 2, Name: "DISCOVER_SCHEMA_ROWSETS", Description: "Returns the names, values, and other information of all supported RequestType enumeration values."},
	enum.Value{Ordinal: 3, Name: "DISCOVER_ENUMERATORS", Description: "Returns a list of names, data types, and enumeration values for enumerators supported by the provider of a specific data source."},
	enum.Value{Ordinal: 4, Name: "DISCOVER_KEYWORDS", Description: "Returns an XML list of keywords reserved by the provider."},
	enum.Value{Ordinal: 5, Name: "DISCOVER_LITERALS", Description: "Returns information about literals supported by the provider."},
	enum.Value{Ordinal: 6, Name: "DISCOVER_XML_METADATA", Description: "Returns an XML document describing a requested object."},
	enum.Value{Ordinal: 7, Name: "DBSCHEMA_CATALOGS", Description: "Identifies the physical attributes associated with catalogs accessible from the provider."},
	enum.Value{Ordinal: 8, Name: "DBSCHEMA_COLUMNS", Description: "Returns the columns of tables accessible from the provider."},
	enum.Value{Ordinal: 9, Name: "DBSCHEMA_PROVIDER_TYPES", Description: "Identifies the base data types supported by the provider."},
	enum.Value{Ordinal: 10, Name: "DBSCHEMA_SCHEMATA", Description: "Identifies the schemas that are owned by a given user."},
	enum.Value{Ordinal: 11, Name: "DBSCHEMA_TABLES", Description: "Returns the tables accessible from the provider."},
	enum.Value{Ordinal: 12, Name: "MDSCHEMA_ACTIONS", Description: "Describes the actions that may be available to the client application."},
	enum.Value{Ordinal: 13, Name: "MDSCHEMA_CUBES", Description: "Describes the structure of cubes within a database."},
	enum.Value{Ordinal: 14, Name: "MDSCHEMA_DIMENSIONS", Description: "Describes the shared and private dimensions within a database."},
	enum.Value{Ordinal: 15, Name: "MDSCHEMA_FUNCTIONS", Description: "Returns information about the functions that are currently available for use in the DAX and MDX languages."},
	enum.Value{Ordinal: 16, Name: "MDSCHEMA_HIERARCHIES", Description: "Describes each hierarchy within a particular dimension."},
	enum.Value{Ordinal: 17, Name: "MDSCHEMA_INPUT_DATASOURCES", Description: "Describes the data source objects that are available in the database."},
	enum.Value{Ordinal: 18, Name: "MDSCHEMA_KPIS", Description: "Describes the key performance indicators within a database."},
	enum.Value{Ordinal: 19, Name: "MDSCHEMA_LEVELS", Description: "Describes each level within a particular hierarchy."},
	enum.Value{Ordinal: 20, Name: "MDSCHEMA_MEASUREGROUPS", Description: "Describes the measure groups within a database."},
	enum.Value{Ordinal: 21, Name: "MDSCHEMA_MEASUREGROUP_DIMENSIONS", Description: "Enumerates the dimensions of the measure groups within a database."},
	enum.Value{Ordinal: 22, Name: "MDSCHEMA_MEASURES", Description: "Describes each measure."},
	enum.Value{Ordinal: 23, Name: "MDSCHEMA_MEMBERS", Description: "Describes the members within a database."},
	enum.Value{Ordinal: 24, Name: "MDSCHEMA_PROPERTIES", Description: "Describes the properties of members and cell properties."},
	enum.Value{Ordinal: 25, Name: "MDSCHEMA_SETS", Description: "Describes any sets that are currently defined in a database, including session-scoped sets."},
	enum.Value{Ordinal: 26, Name: "DMSCHEMA_MINING_MODELS", Description: "Enumerates the data mining models within the database."},
	enum.Value{Ordinal: 27, Name: "DMSCHEMA_MINING_STRUCTURES", Description: "Describes the data mining structures within the database."},
	enum.Value{Ordinal: 28, Name: "DISCOVER_TRACES", Description: "Returns the traces currently running on the server."},
	enum.Value{Ordinal: 29, Name: "DISCOVER_SESSIONS", Description: "Returns the sessions currently open on the server."},
	enum.Value{Ordinal: 30, Name: "DISCOVER_CONNECTIONS", Description: "Returns the connections currently open on the server."},
	enum.Value{Ordinal: 31, Name: "DISCOVER_INSTANCES", Description: "Describes the instances on the server."},
)
