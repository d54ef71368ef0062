// SPDX-License-Identifier: Apache-2.0

package cipher

// Encode shifts every A–Z byte at position i forward by key[i mod len(key)].
// Other bytes are copied unchanged but still advance the key position.
func Encode(text string, key Key) string {
	return apply(text, key, Shift.Add)
}

// Decode reverses Encode.
func Decode(text string, key Key) string {
	return apply(text, key, Shift.Sub)
}

// EncodeText encodes normalized text.
func EncodeText(text Text, key Key) Text {
	return Text(Encode(string(text), key))
}

// DecodeText decodes normalized text.
func DecodeText(text Text, key Key) Text {
	return Text(Decode(string(text), key))
}

func apply(text string, key Key, op func(Shift, Shift) Shift) string {
	if len(key) == 0 {
		return text
	}
	out := []byte(text)
	for i := 0; i < len(out); i++ {
		idx, ok := Index(out[i])
		if !ok {
			continue
		}
		out[i] = op(idx, key[i%len(key)]).Letter()
	}
	return string(out)
}
