package entities

// FormatCLP renders an integer peso amount with dot thousand separators, the
// way es-CL locales print money (1234567 -> "1.234.567").
func FormatCLP(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := []byte{}
	if v == 0 {
		digits = append(digits, '0')
	}
	for v > 0 {
		digits = append(digits, byte('0'+v%10))
		v /= 10
	}
	var out []byte
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
		if i > 0 && i%3 == 0 {
			out = append(out, '.')
		}
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out)
}
