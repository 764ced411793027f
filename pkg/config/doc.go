// Package config loads the xmlad server configuration.
//
// Configuration comes from a YAML file, then XMLAD_* environment variables,
// then validation:
//
//	cfg, err := config.Load("xmlad.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// The file may reference environment variables as ${NAME} or
// ${NAME:-default}. Durations use Go syntax ("30s", "15m").
//
// A minimal file serving one Discover rowset and one canned statement:
//
//	server:
//	  addr: ":8080"
//	  path: /xmla
//	session:
//	  ttl: 30m
//	catalog:
//	  rowsets:
//	    - requestType: DBSCHEMA_CATALOGS
//	      columns:
//	        - {name: CATALOG_NAME, type: "xsd:string"}
//	      rows:
//	        - {CATALOG_NAME: FoodMart}
//	  statements:
//	    - match: SELECT FROM [Sales]
//	      columns:
//	        - {name: "[Measures].[Unit Sales]", type: "xsd:double"}
//	      rows:
//	        - {"[Measures].[Unit Sales]": "266773"}
package config
