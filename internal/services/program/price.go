package program

import (
	"math"
	"strconv"
)

// Курс пересчёта долларовой цены в найры для программ вне прайс-листа.
const nairaRate = 1500

// LocalPrice отдаёт отображаемую цену в найрах. Для двух действующих
// тарифов закреплены маркетинговые цены, остальные считаются по курсу.
func LocalPrice(price float64) string {
	switch {
	case price == 78:
		return "₦120,000"
	case price == 161.20:
		return "₦250,000"
	default:
		return "₦" + groupThousands(int64(math.Round(price*nairaRate)))
	}
}

// groupThousands форматирует целое с разделителями тысяч: 1234567 -> "1,234,567".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var out []byte
	head := len(s) % 3
	if head > 0 {
		out = append(out, s[:head]...)
	}
	for i := head; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
