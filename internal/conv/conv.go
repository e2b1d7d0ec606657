package conv

import (
	"fmt"
	"math"
)

// MaxSlots is the largest capacity a pool can address.
// Slot 0 is never handed out, so one value of the uint32 range is reserved.
const MaxSlots = math.MaxUint32 - 1

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Capacity validates a requested slot count.
func Capacity(n int) (uint32, error) {
	c, err := IntToUint32(n)
	if err != nil {
		return 0, fmt.Errorf("capacity: %w", err)
	}
	if c > MaxSlots {
		return 0, fmt.Errorf("capacity %d exceeds %d slots", n, uint64(MaxSlots))
	}
	return c, nil
}
