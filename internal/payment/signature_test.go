package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "whsk_test_secret"
	body := []byte(`{"data":{"attributes":{"type":"payment.paid"}}}`)
	digest := sign(secret, "1718450000", body)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid test digest", "t=1718450000,te=" + digest + ",li=", false},
		{"valid live digest", "t=1718450000,te=,li=" + digest, false},
		{"spaces around parts", "t=1718450000, te=" + digest, false},
		{"wrong digest", "t=1718450000,te=" + sign(secret, "1718450000", []byte("other")), true},
		{"tampered timestamp", "t=1718450099,te=" + digest, true},
		{"missing header", "", true},
		{"no digests", "t=1718450000", true},
		{"garbage header", "signature", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(body, tt.header, secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifySignature() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	body := []byte(`{}`)
	header := "t=1718450000,te=" + sign("secret-a", "1718450000", body)

	if err := VerifySignature(body, header, "secret-b"); err == nil {
		t.Error("VerifySignature() accepted a digest made with another secret")
	}
}
