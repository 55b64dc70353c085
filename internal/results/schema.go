// Copyright 2021 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package results

import (
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// Input lines come from an external executor and are validated against
// these schemas before being trusted. Result records must carry a name
// and a result; log records a name and a log body. Other fields are
// permitted and ignored.
const (
	recordSchema = `{
		"type": "object",
		"required": ["name", "result"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"result": {"type": "string"},
			"configuration": {"type": "string"}
		}
	}`
	logRecordSchema = `{
		"type": "object",
		"required": ["name", "log"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"log": {"type": "string"},
			"configuration": {"type": "string"},
			"result": {"type": "string"}
		}
	}`
)

var (
	compileOnce   sync.Once
	recordSch     *jsonschema.Schema
	logRecordSch  *jsonschema.Schema
	schemaCompile error
)

// schemas compiles the embedded record schemas once.
func schemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if recordSch, schemaCompile = c.Compile([]byte(recordSchema)); schemaCompile != nil {
			return
		}
		logRecordSch, schemaCompile = c.Compile([]byte(logRecordSchema))
	})
	return recordSch, logRecordSch, schemaCompile
}
