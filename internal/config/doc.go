// Package config provides configuration parsing for the declarative tools.
//
// The configuration is stored in declarative.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "render": {
//	    "pretty": true
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "declarative",
//	    "path": "/metrics"
//	  },
//	  "snapshot": {
//	    "bucket": "my-pages",
//	    "region": "eu-west-1",
//	    "prefix": "snapshots/"
//	  },
//	  "logLevel": "debug"
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
