package fpcode

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
)

// hmacMD5 returns the lowercase hex HMAC-MD5 of message under key.
//
// One deviation from RFC 2104: an empty key yields a plain MD5 of the
// message. This matches the two-argument mode of blueimp-md5, which the
// reference implementation is built on, and is required for output
// compatibility.
func hmacMD5(message, key string) string {
	if key == "" {
		sum := md5.Sum([]byte(message))
		return hex.EncodeToString(sum[:])
	}

	mac := hmac.New(md5.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
