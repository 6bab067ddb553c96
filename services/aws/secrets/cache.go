package secrets

import (
	"encoding/base64"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Payload is the raw value of a secret as returned by Secrets Manager.
// Exactly one of String and Binary is normally set.
type Payload struct {
	String *string
	Binary []byte
}

// payloadFrom copies the value fields out of a GetSecretValue response.
func payloadFrom(out *secretsmanager.GetSecretValueOutput) *Payload {
	if out == nil {
		return &Payload{}
	}

	p := &Payload{}
	if out.SecretString != nil {
		s := *out.SecretString
		p.String = &s
	}
	if out.SecretBinary != nil {
		p.Binary = make([]byte, len(out.SecretBinary))
		copy(p.Binary, out.SecretBinary)
	}

	return p
}

// Decode returns the string form of the payload. A string value is returned
// unchanged; a binary value is base64-decoded, or returned raw when it is not
// valid base64. The boolean is false when there is no value at all.
func (p *Payload) Decode() (string, bool) {
	switch {
	case p == nil:
		return "", false
	case p.String != nil:
		return *p.String, true
	case p.Binary != nil:
		b, err := base64.StdEncoding.DecodeString(string(p.Binary))
		if err != nil {
			return string(p.Binary), true
		}
		return string(b), true
	default:
		return "", false
	}
}
