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

package assert_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/google/graphcodec/core/assert"
)

// An example that shows the simplest of value equality tests with a message
func Example_message() {
	assert := assert.To(nil)
	assert.For("A message").That(false).Equals(true)
	fmt.Fprintf(os.Stdout, "Test complete")
	// Output:
	// Error:A message
	//     Got       false
	//     Expect == true
	// Test complete
}

// An example of testing errors
func Example_errors() {
	assert := assert.To(nil)
	err := errors.New("failure")
	otherErr := errors.New("other failure")
	assert.For("nil succeeded").ThatError(nil).Succeeded()
	assert.For("nil failed").ThatError(nil).Failed()
	assert.For("err succeeded").ThatError(err).Succeeded()
	assert.For("err failed").ThatError(err).Failed()
	assert.For("err equals").ThatError(err).Equals(err)
	assert.For("err not equals").ThatError(err).Equals(otherErr)
	assert.For("message").ThatError(err).HasMessage(err.Error())
	assert.For("wrong message").ThatError(err).HasMessage(otherErr.Error())
	// Output:
	// Error:nil failed
	//     Expect  failure
	// Error:err succeeded
	//     Got     `failure`
	//     Expect  success
	// Error:err not equals
	//     Got       `failure`
	//     Expect == `other failure`
	// Error:wrong message
	//     Got                `failure`
	//     Expect has message `other failure`
}

type recorder struct{ errors, fatals int }

func (r *recorder) Fatal(...interface{}) { r.fatals++ }
func (r *recorder) Error(...interface{}) { r.errors++ }
func (r *recorder) Log(...interface{})   {}

func TestIdentity(t *testing.T) {
	type node struct{ name string }
	a, b := &node{"a"}, &node{"a"}
	list := []interface{}{1, 2}
	m := map[string]int{"x": 1}

	r := &recorder{}
	ctx := assert.To(r)
	ctx.For("same pointer").That(a).IsSameAs(a)
	ctx.For("same slice").That(list).IsSameAs(list)
	ctx.For("same map").That(m).IsSameAs(m)
	ctx.For("equal but distinct").That(a).IsNotSameAs(b)
	ctx.For("deep equal").That(a).DeepEquals(b)
	if r.errors != 0 {
		t.Errorf("Expected identity assertions to pass, got %d failures", r.errors)
	}

	ctx.For("distinct").That(a).IsSameAs(b)
	ctx.For("scalars have no identity").That(1).IsSameAs(1)
	ctx.For("sub-slice").That(list[1:]).IsSameAs(list)
	if r.errors != 3 {
		t.Errorf("Expected 3 identity failures, got %d", r.errors)
	}
}

func TestCause(t *testing.T) {
	sentinel := errors.New("sentinel")
	r := &recorder{}
	ctx := assert.To(r)
	wrapped := pkgerrors.Wrap(pkgerrors.Wrapf(sentinel, "inner %d", 1), "outer")
	ctx.For("wrapped").ThatError(wrapped).HasCause(sentinel)
	ctx.For("stdlib wrapped").ThatError(fmt.Errorf("outer: %w", sentinel)).HasCause(sentinel)
	ctx.For("bytes").ThatBytes([]byte{0x01, 0x02}).Equals([]byte{0x01, 0x02})
	ctx.For("prefix").ThatBytes([]byte{0x01, 0x02}).HasPrefix([]byte{0x01})
	ctx.For("absent").ThatString("abc").DoesNotContain("d")
	if r.errors != 0 {
		t.Errorf("Expected cause assertions to pass, got %d failures", r.errors)
	}
	ctx.For("unrelated").ThatError(errors.New("other")).HasCause(sentinel)
	ctx.For("bytes").ThatBytes([]byte{0x01}).Equals([]byte{0x02})
	ctx.For("prefix").ThatBytes([]byte{0x01}).HasPrefix([]byte{0x01, 0x02})
	ctx.For("present").ThatString("abc").DoesNotContain("b")
	if r.errors != 4 {
		t.Errorf("Expected 4 failures, got %d", r.errors)
	}
}
