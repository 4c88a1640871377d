package core

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Envelope is the decoded "response" object returned by every File API call.
// It is either a success carrying Data or a failure carrying Code and Messages.
type Envelope[T any] struct {
	Code     ResponseCode `json:"code"`
	Data     *T           `json:"data"`
	Messages []string     `json:"messages"`
}

// Success reports whether the envelope carries the SUCCESS code.
func (e *Envelope[T]) Success() bool {
	return e.Code == CodeSuccess
}

// MalformedEnvelopeError is returned when a body is not a JSON envelope.
// It is a transport-level failure, not an APIError.
type MalformedEnvelopeError struct {
	Body string
	Err  error
}

func (e *MalformedEnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response envelope: %v", e.Err)
	}
	return "malformed response envelope: missing response.code"
}

func (e *MalformedEnvelopeError) Unwrap() error {
	return e.Err
}

const maxEchoedBody = 512

// SniffCode reads response.code without decoding the whole body.
func SniffCode(body []byte) (ResponseCode, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	code := gjson.GetBytes(body, "response.code")
	if !code.Exists() || code.Type != gjson.String {
		return "", false
	}
	return ResponseCode(code.String()), true
}

// DecodeEnvelope parses body into an Envelope. Data is decoded only for SUCCESS;
// failure envelopes keep just the code and messages.
func DecodeEnvelope[T any](body []byte) (*Envelope[T], error) {
	code, ok := SniffCode(body)
	if !ok {
		return nil, malformed(body, nil)
	}

	if code != CodeSuccess {
		env := &Envelope[T]{Code: code}
		for _, m := range gjson.GetBytes(body, "response.messages").Array() {
			env.Messages = append(env.Messages, m.String())
		}
		return env, nil
	}

	var wrapper struct {
		Response Envelope[T] `json:"response"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, malformed(body, err)
	}
	return &wrapper.Response, nil
}

// Unwrap decodes body and returns the success data or the mapped error.
func Unwrap[T any](body []byte, statusCode int) (*Envelope[T], error) {
	env, err := DecodeEnvelope[T](body)
	if err != nil {
		return nil, err
	}
	if !env.Success() {
		return nil, NewAPIError(env.Code, env.Messages, statusCode)
	}
	return env, nil
}

func malformed(body []byte, err error) *MalformedEnvelopeError {
	s := string(body)
	if len(s) > maxEchoedBody {
		s = s[:maxEchoedBody]
	}
	return &MalformedEnvelopeError{Body: s, Err: err}
}
