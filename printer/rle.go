// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

// Decompress reconstructs a payload encoded as a stream of RLE runs. Each
// run starts with a header byte b:
//   - b&0x80 set: a repeat run of length (b&0x7F)+2, followed by one byte
//     giving the repeated value.
//   - otherwise: a literal run of length b+1, followed by that many bytes
//     to copy verbatim.
func Decompress(data []byte) ([]byte, error) {
	var out []byte
	i := 0
	for i < len(data) {
		b := data[i]
		i++
		if b&0x80 != 0 {
			n := int(b&0x7F) + 2
			if i >= len(data) {
				return nil, newError(KindTruncation, "repeat run of length %d missing its value byte", n)
			}
			v := data[i]
			i++
			for j := 0; j < n; j++ {
				out = append(out, v)
			}
		} else {
			n := int(b) + 1
			if i+n > len(data) {
				return nil, newError(KindTruncation, "literal run of length %d truncated at offset %d", n, i)
			}
			out = append(out, data[i:i+n]...)
			i += n
		}
	}
	return out, nil
}
