package automaton

const (
	// Golden ratio bit mixer.
	phiC64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) uint64 {
	return mix64(uint64(key))
}

// Final mixing step of the 64-bit MurmurHash3.
func mix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// mixPhi folds v into an order-dependent running hash.
func mixPhi(h uint64, v uint64) uint64 {
	h = (h ^ mix64(v)) * phiC64
	return h ^ (h >> 32)
}
