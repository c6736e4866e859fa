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
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	"github.com/google/graphcodec/framework/binary/ident"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RenderYAML writes v to w as a YAML document. Maps and slices reached more
// than once are written once with an anchor and referenced by alias.
func RenderYAML(w io.Writer, v interface{}) error {
	r := &renderer{
		refs:  map[ident.Key]int{},
		nodes: map[ident.Key]*yaml.Node{},
	}
	r.count(v)
	n, err := r.node(v)
	if err != nil {
		return err
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{n}}); err != nil {
		return errors.Wrap(err, "Writing YAML")
	}
	return e.Close()
}

type renderer struct {
	refs    map[ident.Key]int
	nodes   map[ident.Key]*yaml.Node
	anchors int
}

func shareable(v interface{}) (ident.Key, bool) {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return ident.Of(v)
	}
	return ident.Key{}, false
}

func (r *renderer) count(v interface{}) {
	if key, ok := shareable(v); ok {
		r.refs[key]++
		if r.refs[key] > 1 {
			return
		}
	}
	switch v := v.(type) {
	case map[string]interface{}:
		for _, e := range v {
			r.count(e)
		}
	case []interface{}:
		for _, e := range v {
			r.count(e)
		}
	}
}

// shared returns the alias for an already written value, or registers n as
// the anchored node for v.
func (r *renderer) shared(v interface{}, n *yaml.Node) *yaml.Node {
	key, ok := shareable(v)
	if !ok || r.refs[key] < 2 {
		return nil
	}
	if anchored, ok := r.nodes[key]; ok {
		return &yaml.Node{Kind: yaml.AliasNode, Alias: anchored, Value: anchored.Anchor}
	}
	r.anchors++
	n.Anchor = fmt.Sprintf("ref%d", r.anchors)
	r.nodes[key] = n
	return nil
}

func (r *renderer) node(v interface{}) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case []byte:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(v)}, nil
	case map[string]interface{}:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if alias := r.shared(v, n); alias != nil {
			return alias, nil
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			e, err := r.node(v[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, e)
		}
		return n, nil
	case []interface{}:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if alias := r.shared(v, n); alias != nil {
			return alias, nil
		}
		for _, e := range v {
			c, err := r.node(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, errors.Wrapf(err, "Rendering %T", v)
		}
		return n, nil
	}
}
