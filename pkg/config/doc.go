// Package config loads seqflow runtime settings.
//
// Settings come from, in increasing precedence: built-in defaults, a seqflow.yml file
// (searched in the working directory and ./config unless a path is given), a .env
// file and SEQFLOW_* environment variables. Nested keys map to environment names by
// replacing dots with underscores, so stream.chunk_size is SEQFLOW_STREAM_CHUNK_SIZE.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	if err := cfg.Apply(); err != nil {
//		return err
//	}
//
// Validation uses struct tags checked by go-playground/validator; every failure is a
// *errors.ValidationError naming the offending key.
package config
