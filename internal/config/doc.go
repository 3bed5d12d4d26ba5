// Package config provides configuration parsing for dragkit.
//
// The configuration is stored in dragkit.json in the working directory. Every
// field is optional; missing fields keep their defaults. A few fields can be
// overridden from the environment (DRAGKIT_ADDR, DRAGKIT_METRICS_ADDR,
// DRAGKIT_LOG_LEVEL). Setting DRAGKIT_METRICS_ADDR=off disables the metrics
// endpoint.
//
// # Configuration File Structure
//
//	{
//	  "addr": "localhost:8080",
//	  "metricsAddr": "localhost:9090",
//	  "logLevel": "info",
//	  "autoscroll": {
//	    "interval": 500,
//	    "triggerRange": 150
//	  },
//	  "clone": {
//	    "maxRotation": 2
//	  },
//	  "server": {
//	    "readTimeout": "60s",
//	    "readBufferSize": 4096,
//	    "writeBufferSize": 4096
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyEnv(os.Getenv)
package config
