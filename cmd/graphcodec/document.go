// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/graphcodec/core/fault"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// ErrRecursiveAlias is returned for a YAML sequence that contains itself.
	ErrRecursiveAlias = fault.Const("Recursive alias")
	// ErrUnsupportedDocument is returned for documents the registry cannot hold.
	ErrUnsupportedDocument = fault.Const("Unsupported document")
)

// DocumentType identifies the syntax of an input document.
type DocumentType string

const (
	Auto DocumentType = "auto"
	YAML DocumentType = "yaml"
	JSON DocumentType = "json"
	CBOR DocumentType = "cbor"
)

var documentDecoder cbor.DecMode

func init() {
	var err error
	documentDecoder, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// ParseDocumentType returns the document type with the given name.
func ParseDocumentType(name string) (DocumentType, error) {
	switch t := DocumentType(strings.ToLower(name)); t {
	case Auto, YAML, JSON, CBOR:
		return t, nil
	}
	return "", errors.Errorf("Unknown document type %q", name)
}

// Detect resolves Auto to a concrete type from the file name, falling back to
// YAML, which also accepts plain JSON.
func (t DocumentType) Detect(name string) DocumentType {
	if t != Auto {
		return t
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return JSON
	case ".cbor":
		return CBOR
	}
	return YAML
}

// ParseDocument returns the value held by data.
// YAML anchors and aliases become shared maps and slices.
func ParseDocument(data []byte, t DocumentType) (interface{}, error) {
	switch t {
	case YAML, Auto:
		root := yaml.Node{}
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(err, "Parsing YAML")
		}
		return newNodeBuilder().value(&root)
	case JSON:
		var v interface{}
		d := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		if err := d.Decode(&v); err != nil {
			return nil, errors.Wrap(err, "Parsing JSON")
		}
		return v, nil
	case CBOR:
		var v interface{}
		if err := documentDecoder.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "Parsing CBOR")
		}
		return v, nil
	default:
		return nil, errors.Errorf("Unknown document type %q", t)
	}
}

type nodeBuilder struct {
	built   map[*yaml.Node]interface{}
	pending map[*yaml.Node]bool
}

func newNodeBuilder() *nodeBuilder {
	return &nodeBuilder{
		built:   map[*yaml.Node]interface{}{},
		pending: map[*yaml.Node]bool{},
	}
}

func (b *nodeBuilder) value(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return b.value(n.Content[0])
	case yaml.AliasNode:
		return b.value(n.Alias)
	}
	if v, ok := b.built[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		// A map exists before its entries, so aliases inside it can refer to it.
		b.built[n] = m
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrUnsupportedDocument, "line %d: non scalar key", k.Line)
			}
			v, err := b.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[k.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		if b.pending[n] {
			return nil, errors.Wrapf(ErrRecursiveAlias, "line %d", n.Line)
		}
		b.pending[n] = true
		defer delete(b.pending, n)
		s := make([]interface{}, len(n.Content))
		for i, c := range n.Content {
			v, err := b.value(c)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		b.built[n] = s
		return s, nil
	case yaml.ScalarNode:
		v, err := scalar(n)
		if err != nil {
			return nil, err
		}
		b.built[n] = v
		return v, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDocument, "line %d: node kind %v", n.Line, n.Kind)
	}
}

func scalar(n *yaml.Node) (interface{}, error) {
	if n.ShortTag() == "!!binary" {
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return b, nil
	}
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "line %d", n.Line)
	}
	switch v := v.(type) {
	case time.Time:
		return n.Value, nil
	case nil, string, bool, int, int64, uint64, float64:
		return v, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDocument, "line %d: %s of type %T", n.Line, fmt.Sprint(v), v)
	}
}
