package parcels

// Capacity is the number of buckets in an Index. It is prime so the final
// modulo spreads the accumulator evenly.
const Capacity = 127

const hashSeed = 5381

// Hash maps a country name to its bucket with the djb2 string hash: seed
// 5381, h = h*33 + b for every byte b with 32-bit wraparound, then modulo
// Capacity. The result is always in [0, Capacity).
func Hash(s string) uint32 {
	h := uint32(hashSeed)
	for i := 0; i < len(s); i++ {
		h = h*33 + uint32(s[i])
	}
	return h % Capacity
}
