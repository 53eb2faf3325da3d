package sskr

// GF(256) arithmetic over the AES polynomial x^8+x^4+x^3+x+1, via
// log/exp tables on the generator 3.
var (
	gfExp [510]byte
	gfLog [256]byte
)

func init() {
	x := byte(1)
	for i := range 255 {
		gfExp[i] = x
		gfLog[x] = byte(i)
		// multiply x by the generator 3: x*2 + x
		x2 := x << 1
		if x&0x80 != 0 {
			x2 ^= 0x1b
		}
		x = x2 ^ x
	}
	for i := 255; i < 510; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	if b == 0 {
		panic("sskr: division by zero in GF(256)")
	}
	return gfExp[int(gfLog[a])+255-int(gfLog[b])]
}

// interpolate evaluates, at x, the unique polynomial of degree
// len(points)-1 passing through the given (x, y-vector) points, one byte
// position at a time.
func interpolate(points []gfPoint, x byte, width int) []byte {
	out := make([]byte, width)
	for i, pi := range points {
		// Lagrange basis coefficient for point i at x.
		num, den := byte(1), byte(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			num = gfMul(num, x^pj.x)
			den = gfMul(den, pi.x^pj.x)
		}
		coeff := gfDiv(num, den)
		for k := range width {
			out[k] ^= gfMul(coeff, pi.y[k])
		}
	}
	return out
}

type gfPoint struct {
	x byte
	y []byte
}
