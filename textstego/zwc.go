// Package textstego hides payloads inside visible text using zero-width
// Unicode characters. The characters are invisible when rendered but
// survive copy and paste, which makes them a convenient carrier for short
// secrets in plain text.
package textstego

import (
	"fmt"
	"strings"

	"image-steganography-backend/stego"
)

// Zero-width carriers. 1-bit encoding uses the joiner pair; 2-bit
// encoding maps bit pairs onto four characters.
const (
	zwc0 = '‌' // Zero Width Non-Joiner
	zwc1 = '‍' // Zero Width Joiner

	zwc00 = '​' // Zero Width Space
	zwc01 = '‌'
	zwc10 = '‍'
	zwc11 = '\uFEFF' // Zero Width No-Break Space
)

// Insertion methods for spreading the invisible characters through the
// cover text.
const (
	InsertAppend       = "append"
	InsertBetweenWords = "between_words"
	InsertDistributed  = "distributed"
)

// EncodeMessage hides payload inside coverText, framed with the same
// 32-bit big-endian bit-length header as the image codec. encodingBits
// selects the carrier alphabet (1 or 2 bits per character);
// insertionMethod is one of the Insert* constants, defaulting to append
// when empty.
func EncodeMessage(coverText string, payload []byte, encodingBits int, insertionMethod string) (string, error) {
	bits := append(stego.IntToBits(uint32(len(payload)*8), stego.HeaderBits), stego.BytesToBits(payload)...)
	zwc, err := bitsToZWC(bits, encodingBits)
	if err != nil {
		return "", err
	}

	if insertionMethod == "" {
		insertionMethod = InsertAppend
	}
	switch insertionMethod {
	case InsertAppend:
		return coverText + zwc, nil
	case InsertBetweenWords:
		return insertBetweenWords(coverText, zwc), nil
	case InsertDistributed:
		return insertDistributed(coverText, zwc), nil
	default:
		return "", fmt.Errorf("unknown insertion method: %q", insertionMethod)
	}
}

// DecodeMessage extracts a hidden payload from stegoText. Visible
// characters are ignored; only the zero-width carriers contribute bits.
// The 32-bit header declares exactly how many payload bits follow, so
// stray zero-width characters after the payload are harmless.
func DecodeMessage(stegoText string, encodingBits int) ([]byte, error) {
	bits, err := zwcToBits(stegoText, encodingBits)
	if err != nil {
		return nil, err
	}

	if len(bits) < stego.HeaderBits {
		return nil, fmt.Errorf("%w: found %d carrier bits, need at least the %d-bit header",
			stego.ErrCorruptedPayload, len(bits), stego.HeaderBits)
	}
	payloadBits := int(stego.BitsToInt(bits[:stego.HeaderBits]))
	if len(bits)-stego.HeaderBits < payloadBits {
		return nil, fmt.Errorf("%w: header declares %d payload bits but only %d remain in the text",
			stego.ErrCorruptedPayload, payloadBits, len(bits)-stego.HeaderBits)
	}
	return stego.BitsToBytes(bits[stego.HeaderBits : stego.HeaderBits+payloadBits]), nil
}

func bitsToZWC(bits []byte, encodingBits int) (string, error) {
	var sb strings.Builder
	switch encodingBits {
	case 1:
		for _, b := range bits {
			if b == 0 {
				sb.WriteRune(zwc0)
			} else {
				sb.WriteRune(zwc1)
			}
		}
	case 2:
		// Pad to an even bit count; the decoder drops the partial byte.
		if len(bits)%2 != 0 {
			bits = append(bits, 0)
		}
		for i := 0; i < len(bits); i += 2 {
			switch bits[i]<<1 | bits[i+1] {
			case 0:
				sb.WriteRune(zwc00)
			case 1:
				sb.WriteRune(zwc01)
			case 2:
				sb.WriteRune(zwc10)
			case 3:
				sb.WriteRune(zwc11)
			}
		}
	default:
		return "", fmt.Errorf("encoding bits must be 1 or 2 (got %d)", encodingBits)
	}
	return sb.String(), nil
}

func zwcToBits(text string, encodingBits int) ([]byte, error) {
	var bits []byte
	switch encodingBits {
	case 1:
		for _, r := range text {
			switch r {
			case zwc0:
				bits = append(bits, 0)
			case zwc1:
				bits = append(bits, 1)
			}
		}
	case 2:
		for _, r := range text {
			switch r {
			case zwc00:
				bits = append(bits, 0, 0)
			case zwc01:
				bits = append(bits, 0, 1)
			case zwc10:
				bits = append(bits, 1, 0)
			case zwc11:
				bits = append(bits, 1, 1)
			}
		}
	default:
		return nil, fmt.Errorf("encoding bits must be 1 or 2 (got %d)", encodingBits)
	}
	return bits, nil
}

// insertBetweenWords spreads the carrier characters across the spaces of
// the cover text, appending any remainder at the end.
func insertBetweenWords(coverText, zwc string) string {
	words := strings.Split(coverText, " ")
	if len(words) <= 1 {
		return coverText + zwc
	}

	carriers := []rune(zwc)
	perSpace := len(carriers) / (len(words) - 1)

	var sb strings.Builder
	sb.WriteString(words[0])
	idx := 0
	for _, word := range words[1:] {
		chunk := min(perSpace, len(carriers)-idx)
		if chunk > 0 {
			sb.WriteString(string(carriers[idx : idx+chunk]))
			idx += chunk
		}
		sb.WriteByte(' ')
		sb.WriteString(word)
	}
	if idx < len(carriers) {
		sb.WriteString(string(carriers[idx:]))
	}
	return sb.String()
}

// insertDistributed interleaves one carrier character into the cover text
// at regular intervals, appending any remainder at the end.
func insertDistributed(coverText, zwc string) string {
	if coverText == "" {
		return zwc
	}
	carriers := []rune(zwc)
	if len(carriers) == 0 {
		return coverText
	}

	cover := []rune(coverText)
	interval := max(len(cover)/len(carriers), 1)

	var sb strings.Builder
	idx := 0
	for i, r := range cover {
		sb.WriteRune(r)
		if (i+1)%interval == 0 && idx < len(carriers) {
			sb.WriteRune(carriers[idx])
			idx++
		}
	}
	if idx < len(carriers) {
		sb.WriteString(string(carriers[idx:]))
	}
	return sb.String()
}
