// internal/app/system/limits/limits.go
package limits

// Request size limits.
const (
	// MaxJSONBody caps every JSON request body.
	MaxJSONBody = 64 << 10 // 64 KB

	// MaxPasswordBytes is bcrypt's input limit. It is a byte count, not runes.
	MaxPasswordBytes = 72
)
