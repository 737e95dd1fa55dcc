package format

// Align returns n rounded up to the next 8-byte boundary.
// Payload sizes and all derived offsets must be 8-byte aligned.
//
// Example:
//
//	Align(1)  = 8
//	Align(8)  = 8
//	Align(9)  = 16
//	Align(16) = 16
func Align(n int64) int64 {
	return (n + AlignmentMask) & ^int64(AlignmentMask)
}
