package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// VerifySignature checks a webhook signature header of the form
// "t=<unix>,te=<hex>,li=<hex>" against the raw request body. The signed
// message is "<timestamp>.<body>"; either the test (te) or live (li) digest
// may match.
func VerifySignature(body []byte, header, secret string) error {
	if header == "" {
		return errors.Unauthorized("Missing webhook signature")
	}

	var timestamp string
	var digests []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "te", "li":
			if v != "" {
				digests = append(digests, v)
			}
		}
	}
	if timestamp == "" || len(digests) == 0 {
		return errors.Unauthorized("Malformed webhook signature")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, digest := range digests {
		if hmac.Equal([]byte(expected), []byte(digest)) {
			return nil
		}
	}

	return errors.Unauthorized("Invalid webhook signature")
}
