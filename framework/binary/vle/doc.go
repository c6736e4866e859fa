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

// Package vle implements pod.Reader and pod.Writer using a variable
// length encoding format. It is the default wire encoding for graph streams.
//
// Boolean values are encoded as single bytes, where 0 represents false and non-
// zero represents true.
//
// 8 bit values are encoded as single bytes.
// 16, 32 and 64 bit unsigned integers are encoded into a one or more bytes.
// The number of sequential ones starting from the most-significant bit of the
// first encoded byte describe the number of additional bytes that make up the
// unsigned integer. If the run of ones does not fill the byte, then the run is
// terminated with a zero bit. The unsigned integer value is then big-endian
// encoded into the remainder of the bits from the first byte and any
// additional bytes.
//
// For example, the 16-bit number 0xABC is encoded as the two bytes
//
//	10 001010  10111100
//	^^ one extra byte follows, value bits 0x0A then 0xBC
//
// Signed integers are converted to unsigned integers by interleaving negative
// then positive numbers before being encoded as unsigned integers. The signed
// numbers [0, -1, +1, -2, +2] become [0, 1, 2, 3, 4]. Graph tags are signed,
// so null (0), the backreference marker (-1) and the first few constant and
// codec tags all fit in a single byte.
//
// Floating-point numbers are converted to their IEEE bit patterns and then
// byte-reversed before being encoded as unsigned integers, so that numbers
// with simple fractional parts encode with fewer bytes.
//
// Strings encode a 32 bit unsigned byte count followed by the UTF-8 data.
package vle
