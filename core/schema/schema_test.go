// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package schema_test

import (
	"testing"
	"testing/fstest"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/schema"
)

const (
	ref1 = `{ "type" : "string" ,
		      "$id" : "http://some_host.com/string.json"}`
	ref2 = `{ "$id" : "http://some_host.com/maxlength.json",
	 		  "maxLength" : 5 }`

	top_level1 = `
	{ "$id" : "http://some_host.com/top1.json",
	  "allOf" : [
		{ "$ref" : "http://some_host.com/string.json" },
		{ "$ref" : "http://some_host.com/maxlength.json" }
		]
	}`
	top_level2 = `
	{ "$id" : "http://some_host.com/top2.json",
	  "allOf" : [
 		{ "$ref" : "http://some_host.com/string.json" },
 		{ "type": "string", "minlength": 3 }
	  ]
	}`
)

func TestValidateString(t *testing.T) {
	v, err := schema.NewValidator([]string{top_level1, top_level2}, []string{ref1, ref2})
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}

	schemaID1 := "http://some_host.com/top1.json"
	schemaID2 := "http://some_host.com/top2.json"
	jsonShortString := `"short"`
	jsonLongString := `"a very long string"`

	// Valid json
	if err := v.ValidateString(jsonShortString, schemaID1); err != nil {
		t.Fatalf("%s is expected to be valid with schema %s. Reported error was: %v", jsonShortString, schemaID1, err)
	}

	// Invalid json
	err = v.ValidateString(jsonLongString, schemaID1)
	if err == nil {
		t.Fatalf("%s is expected to be invalid with schema %s", jsonLongString, schemaID1)
	}
	if !core.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	// Valid json
	if err := v.ValidateString(jsonLongString, schemaID2); err != nil {
		t.Fatalf("%s is expected to be valid with schema %s. Reported error was: %v", jsonLongString, schemaID2, err)
	}
}

func TestValidateStruct(t *testing.T) {
	schema1 := `{
		"$id": "http://jobly.dev/schemas/companyNew.json",
		"type": "object",
		"required": [
			"handle"
		],
		"properties": {
			"handle": {
				"type": "string"
			}
		}
	}`
	type Company struct {
		Handle string `json:"handle"`
	}

	v, err := schema.NewValidator([]string{schema1}, []string{})
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}

	// Valid json
	if err := v.ValidateStruct(Company{"c1"}, "http://jobly.dev/schemas/companyNew.json"); err != nil {
		t.Fatal(err)
	}

	// Invalid json
	type CompanyIncorrect struct {
		Handle string `json:"handle_wrong"`
	}
	if err := v.ValidateStruct(CompanyIncorrect{"c1"}, "http://jobly.dev/schemas/companyNew.json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateBytesDetails(t *testing.T) {
	schema1 := `{
		"$id": "http://jobly.dev/schemas/jobNew.json",
		"type": "object",
		"additionalProperties": false,
		"required": ["title", "companyHandle"],
		"properties": {
			"title": {"type": "string"},
			"companyHandle": {"type": "string"},
			"salary": {"type": "integer", "minimum": 0}
		}
	}`
	v, err := schema.NewValidator([]string{schema1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = v.ValidateBytes([]byte(`{"salary": -1}`), "http://jobly.dev/schemas/jobNew.json")
	validationErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(validationErr.Details) != 3 {
		t.Fatalf("expected 3 details, got %v", validationErr.Details)
	}

	if err := v.ValidateBytes([]byte(`not json`), "http://jobly.dev/schemas/jobNew.json"); !core.IsValidation(err) {
		t.Fatalf("expected a validation error for malformed json, got %v", err)
	}
}

func TestHasSchema(t *testing.T) {
	v, err := schema.NewValidator([]string{top_level1, top_level2}, []string{ref1, ref2})
	if err != nil {
		t.Fatalf("No error expected when creating validator, got %v", err)
	}

	schemaID := "http://some_host.com/top1.json"
	if !v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is expected to be available", schemaID)
	}
	schemaID = "http://some_host.com/top2.json"
	if !v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is expected to be available", schemaID)
	}

	schemaID = "http://some_host.com/unknownscehma.json"
	if v.HasSchema(schemaID) {
		t.Fatalf("%s schemaID is not expected to be available", schemaID)
	}
}

func TestNewValidatorFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"top1.json":           {Data: []byte(top_level1)},
		"top2.json":           {Data: []byte(top_level2)},
		"README.md":           {Data: []byte("ignored")},
		"refs/string.json":    {Data: []byte(ref1)},
		"refs/maxlength.json": {Data: []byte(ref2)},
	}
	v, err := schema.NewValidatorFromFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if !v.HasSchema("http://some_host.com/top1.json") || !v.HasSchema("http://some_host.com/top2.json") {
		t.Fatal("schemas missing")
	}

	// refs are optional
	if _, err := schema.NewValidatorFromFS(fstest.MapFS{"top2.json": {Data: []byte(`{"$id": "http://some_host.com/only.json", "type": "string"}`)}}); err != nil {
		t.Fatal(err)
	}
}
